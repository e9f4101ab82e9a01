package cli

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"gorm.io/datalayer"
)

var ErrFileExists = errors.New("file already exists")

// EntitySpec describes the entity file to generate
type EntitySpec struct {
	Name       string
	Table      string
	Primary    string
	Required   []string
	Timestamps bool
	Relations  []RelationInfo
}

var entityTemplate = template.Must(template.New("entity").Parse(`package models

import (
	"gorm.io/datalayer"
)

// {{.Name}}Meta {{.TableName}} table
var {{.Name}}Meta = &datalayer.Metadata{
	Name: "{{.Name}}",
{{- if .Table}}
	Table: "{{.Table}}",
{{- end}}
{{- if .Primary}}
	Primary: "{{.Primary}}",
{{- end}}
{{- if .Required}}
	Required: []string{ {{- range $i, $f := .Required}}{{if $i}}, {{end}}"{{$f}}"{{end -}} },
{{- end}}
{{- if .Timestamps}}
	Timestamps: true,
{{- end}}
}

type {{.Name}} struct {
	*datalayer.Entity
}

// New{{.Name}} creates an empty {{.Name}}
func New{{.Name}}(db *datalayer.DB) *{{.Name}} {
	return &{{.Name}}{Entity: db.Entity({{.Name}}Meta)}
}
{{range .Relations}}
{{if eq .Type "has_many" -}}
// {{.Method}} {{.Target}} entities referencing the {{$.Name}}
func (m *{{$.Name}}) {{.Method}}(db *datalayer.DB) ([]*datalayer.Entity, error) {
	return db.Entity({{.Target}}Meta).Select("*").Where("{{.ForeignKey}}", "=", m.Field(m.Metadata().PrimaryKey())).FetchAll()
}
{{- else -}}
// {{.Method}} {{.Target}} referenced by {{.ForeignKey}}
func (m *{{$.Name}}) {{.Method}}(db *datalayer.DB) (*datalayer.Entity, error) {
	return db.Entity({{.Target}}Meta).FindByID(m.Field("{{.ForeignKey}}"))
}
{{- end}}
{{end}}`))

// RenderEntity renders the gofmt formatted source of spec
func RenderEntity(spec EntitySpec) ([]byte, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("entity name must be provided")
	}

	var buf bytes.Buffer
	err := entityTemplate.Execute(&buf, struct {
		EntitySpec
		TableName string
	}{EntitySpec: spec, TableName: tableName(spec)})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// GenerateEntity writes the entity of spec to internal/models under baseFolder
// and returns the file name, existing files are kept unless force is set
func GenerateEntity(fs afero.Fs, baseFolder string, spec EntitySpec, force bool) (string, error) {
	source, err := RenderEntity(spec)
	if err != nil {
		return "", err
	}

	modelsFolder := filepath.Join(baseFolder, "internal", "models")
	if err := fs.MkdirAll(modelsFolder, os.ModePerm); err != nil {
		return "", err
	}

	filename := filepath.Join(modelsFolder, datalayer.SnakeCase(spec.Name)+".go")
	if err := writeFile(fs, filename, source, force); err != nil {
		return "", err
	}
	return filename, nil
}

func writeFile(fs afero.Fs, filename string, content []byte, force bool) error {
	if !force {
		exists, err := afero.Exists(fs, filename)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrFileExists, filename)
		}
	}
	return afero.WriteFile(fs, filename, content, 0o644)
}

func tableName(spec EntitySpec) string {
	if spec.Table != "" {
		return spec.Table
	}
	return datalayer.TableName(spec.Name)
}

// SplitList splits a comma separated flag value
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
