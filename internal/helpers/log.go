package helpers

import (
	"fmt"
	"log"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _defaultLogger struct {
}

func (l *_defaultLogger) Println(v ...any) {
	log.Println(v...)
}
func (l *_defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
func (l *_defaultLogger) Print(v ...any) {
	log.Print(v...)
}

var DefaultLogger Logger = &_defaultLogger{}

type _funcLogger struct {
	f func(string)
}

// FuncLogger forwards every formatted line to f.
func FuncLogger(f func(string)) Logger {
	return &_funcLogger{f}
}

func (l *_funcLogger) Println(v ...any) {
	l.f(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.f(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.f(fmt.Sprint(v...))
}

type _prefixLogger struct {
	prefix string
	inner  Logger
}

func PrefixLogger(prefix string, inner Logger) Logger {
	return &_prefixLogger{prefix, inner}
}

func (l *_prefixLogger) Println(v ...any) {
	l.inner.Println(append([]any{l.prefix}, v...)...)
}
func (l *_prefixLogger) Printf(format string, v ...any) {
	l.inner.Printf(l.prefix+" "+format, v...)
}
func (l *_prefixLogger) Print(v ...any) {
	l.inner.Print(append([]any{l.prefix + " "}, v...)...)
}
