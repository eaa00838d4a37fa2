// Package format implements the line-oriented rewrite passes that bring C
// sources to the house style: canonical section banners, a blank line between
// a function's closing brace and the next doc comment, and a blank line
// before return statements inside function bodies.
//
// Назначение: чистые преобразования последовательности строк, без какого-либо IO.
// Не делает: разбора C, проверки корректности кода, чтения или записи файлов.
// Зависимости: только стандартная библиотека.
package format
