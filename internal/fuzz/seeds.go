package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addStyleSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.c файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".c" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func addStyleSeeds(f *testing.F) {
	seeds := []string{
		"",
		"int main(void)\n{\n    return 0;\n}\n",
		"/*====宏 定 义====*/\n#define MAX 4\n",
		"/*\t头 文 件\t*/\n#include <stdio.h>\n",
		"/*************************** 函数实现 ****************************/\n",
		"void f(void)\n{\n    if (x) {\n        return;\n    }\n}\n",
		"}\n/** запускает насос */\nvoid g(void);\n",
		"/* 宏 定 义 без закрытия\n#define X\n",
		"static int a;\r\nstatic int b;\r\n",
		"return 1;\nreturn;\n",
		"{\n{\n{\nreturn x + y;\n}\n}\n}\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
