package bmeta

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Meta метаданные сборки, задаются через -ldflags.
type Meta struct {
	Version string
	Date    string
	Commit  string
}

// New возвращает метаданные, пустые значения заменяются на N/A.
func New(version, date, commit string) Meta {
	return Meta{
		Version: orDefault(version),
		Date:    orDefault(date),
		Commit:  orDefault(commit),
	}
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}

// Fprint Распечатывает версию, дату и комит сборки.
func (m Meta) Fprint(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Build version: %s\n", m.Version)
	_, _ = fmt.Fprintf(w, "Build date: %s\n", m.Date)
	_, _ = fmt.Fprintf(w, "Build commit: %s\n", m.Commit)
}

// Fields поля для структурного лога.
func (m Meta) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", m.Version),
		zap.String("build_date", m.Date),
		zap.String("commit", m.Commit),
	}
}
