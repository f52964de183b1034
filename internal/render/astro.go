package render

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/sage-code/ara-docs/internal/site"
)

// Astro project files written by the astro format.
const (
	AstroConfigFile     = "astro.config.mjs"
	ContentConfigFile   = "src/content/config.ts"
	starlightSchemaPath = "@astrojs/starlight/schema"
)

const astroConfigTemplate = `import { defineConfig } from 'astro/config';
import starlight from '@astrojs/starlight';

// https://astro.build/config
export default defineConfig({
	integrations: [
		starlight({
			title: {{ js .Title }},
{{- with .Description }}
			description: {{ js . }},
{{- end }}
{{- with .CustomCSS }}
			customCss: [
{{- range . }}
				{{ js . }},
{{- end }}
			],
{{- end }}
{{- with .Social }}
			social: {
{{- range . }}
				{{ key .Platform }}: {{ js .URL }},
{{- end }}
			},
{{- end }}
{{- with .DefaultLocale }}
			defaultLocale: {{ js . }},
{{- end }}
{{- with .Locales }}
			locales: {
{{- range $name, $loc := . }}
				{{ key $name }}: {
					label: {{ js $loc.Label }},
{{- with $loc.Lang }}
					lang: {{ js . }},
{{- end }}
{{- with $loc.Dir }}
					dir: {{ js . }},
{{- end }}
				},
{{- end }}
			},
{{- end }}
			sidebar: [
{{- range .Sidebar }}
				{
					label: {{ js .Label }},
{{- if .Collapsed }}
					collapsed: true,
{{- end }}
{{- if .Autogenerate }}
					autogenerate: { directory: {{ js .Autogenerate.Directory }}{{ if .Autogenerate.Collapsed }}, collapsed: true{{ end }} },
{{- else }}
					items: [
{{- range .Items }}
						{ label: {{ js .Label }}, link: {{ js .Link }} },
{{- end }}
					],
{{- end }}
				},
{{- end }}
			],
		}),
	],
});
`

const contentConfigTemplate = `import { defineCollection } from 'astro:content';
import { {{ join .Factories ", " }} } from '{{ .SchemaModule }}';

export const collections = {
{{- range .Collections }}
  {{ key .Name }}: defineCollection({ {{ if eq .Type "data" }}type: 'data', {{ end }}schema: {{ .Factory }}() }),
{{- end }}
};
`

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\u2028", `\u2028`, "\u2029", `\u2029`)
	return "'" + r.Replace(s) + "'"
}

// jsKey renders an object key, quoting it only when it is not an identifier.
func jsKey(s string) string {
	if identifier.MatchString(s) {
		return s
	}
	return jsString(s)
}

var astroFuncs = template.FuncMap{
	"js":   jsString,
	"key":  jsKey,
	"join": strings.Join,
}

var (
	astroConfigTpl   = template.Must(template.New("astro.config.mjs").Funcs(astroFuncs).Option("missingkey=error").Parse(astroConfigTemplate))
	contentConfigTpl = template.Must(template.New("config.ts").Funcs(astroFuncs).Option("missingkey=error").Parse(contentConfigTemplate))
)

// RenderAstroConfig renders the Starlight integration configuration.
func RenderAstroConfig(cfg *site.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := astroConfigTpl.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render %s: %w", AstroConfigFile, err)
	}
	return buf.Bytes(), nil
}

type contentCollection struct {
	Name    string
	Type    string
	Factory string
}

// RenderContentConfig renders the content collection bindings. Each
// collection uses the schema factory named after its schema (docs ->
// docsSchema).
func RenderContentConfig(cols []CollectionInfo) ([]byte, error) {
	data := struct {
		SchemaModule string
		Factories    []string
		Collections  []contentCollection
	}{SchemaModule: starlightSchemaPath}

	seen := map[string]bool{}
	for _, c := range cols {
		schema := c.Schema
		if schema == "" {
			schema = c.Name
		}
		factory := schema + "Schema"
		if !seen[factory] {
			seen[factory] = true
			data.Factories = append(data.Factories, factory)
		}
		data.Collections = append(data.Collections, contentCollection{Name: c.Name, Type: c.Type, Factory: factory})
	}
	if len(data.Collections) == 0 {
		return nil, fmt.Errorf("render %s: no collections", ContentConfigFile)
	}
	sort.Strings(data.Factories)

	var buf bytes.Buffer
	if err := contentConfigTpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", ContentConfigFile, err)
	}
	return buf.Bytes(), nil
}

type astroWriter struct{}

func (astroWriter) Format() string { return FormatAstro }

func (astroWriter) Write(dir string, m *Manifest) ([]string, error) {
	astroCfg, err := RenderAstroConfig(m.Site)
	if err != nil {
		return nil, err
	}
	contentCfg, err := RenderContentConfig(m.Collections)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, f := range []struct {
		rel  string
		data []byte
	}{{AstroConfigFile, astroCfg}, {ContentConfigFile, contentCfg}} {
		path, err := WriteFile(dir, f.rel, f.data)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
