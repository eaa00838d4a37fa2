package main

import (
	"fmt"
	"os"

	"cstyle/internal/format"
)

// Ручной прогон проходов над одним файлом, удобно при отладке правил.
func main() {
	path := "testdata/stats_dirty.c"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("read error: %v\n", err)
		os.Exit(1)
	}

	content := string(data)
	out, rep := format.Normalize(content)
	fmt.Printf("%s: %s\n", path, rep)
	if out == content {
		fmt.Println("no changes")
		return
	}

	before := format.SplitLines(content)
	after := format.SplitLines(out)
	offset := 0
	for idx, line := range after {
		orig := idx - offset
		if orig < len(before) && before[orig] == line {
			continue
		}
		if orig >= len(before) || (line == "" && before[orig] != "") {
			// вставленная пустая строка
			fmt.Printf("%4d + %q\n", idx+1, line)
			offset++
			continue
		}
		// замена на месте
		fmt.Printf("%4d ~ %q\n", idx+1, line)
	}
}
