package fuzztests

import (
	"testing"
	"unicode/utf8"

	"cstyle/internal/format"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzNormalize(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}
		if !utf8.Valid(input) {
			t.Skip("загрузчик отклоняет такой файл до запуска проходов")
		}

		content := string(input)
		out, rep := format.Normalize(content)

		// Проходы заменяют строки или вставляют пустые, но никогда не удаляют.
		inLines := len(format.SplitLines(content))
		outLines := len(format.SplitLines(out))
		if outLines != inLines+rep.FunctionGaps+rep.ReturnGaps {
			t.Fatalf("line count: in=%d out=%d report=%+v", inLines, outLines, rep)
		}

		// Повторный запуск на результате ничего не меняет.
		again, rep2 := format.Normalize(out)
		if again != out {
			t.Fatalf("second run changed output:\nfirst  %q\nsecond %q", out, again)
		}
		if rep2.Total() != 0 {
			t.Fatalf("second run reported edits: %+v", rep2)
		}
	})
}
