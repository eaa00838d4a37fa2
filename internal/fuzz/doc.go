
// Package fuzztests houses Go fuzz harnesses that exercise the style rewrite
// passes on arbitrary inputs. Its goal is to smoke test robustness and guard
// the pass invariants: no panics, no dropped lines, stable second run.
//
// Назначение: прогонять произвольные входы через format.Normalize и проверять
// инварианты проходов.
//
// Не делает: запись файлов, выполнение CLI, проверку кэша.
//
// Зависимости: internal/format.

package fuzztests
