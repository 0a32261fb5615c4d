package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngine_Parse(t *testing.T) {
	engine := NewTemplateEngine()

	tests := []struct {
		name      string
		template  string
		variables map[string]interface{}
		expected  string
		hasError  bool
	}{
		{
			name:      "simple placeholder substitution",
			template:  "Test ${name}",
			variables: map[string]interface{}{"name": "Cement"},
			expected:  "Test Cement",
		},
		{
			name:      "repeated placeholder",
			template:  "def get_${name}(self):\n    return self.__${name}",
			variables: map[string]interface{}{"name": "co2"},
			expected:  "def get_co2(self):\n    return self.__co2",
		},
		{
			name:      "python braces are kept",
			template:  `f"{name}: {value}" ${unit}`,
			variables: map[string]interface{}{"unit": "kt"},
			expected:  `f"{name}: {value}" kt`,
		},
		{
			name:      "escaped dollar",
			template:  "cost $$${amount}",
			variables: map[string]interface{}{"amount": 3},
			expected:  "cost $3",
		},
		{
			name:      "sprig pipeline",
			template:  "${ .name | upper }",
			variables: map[string]interface{}{"name": "cement"},
			expected:  "CEMENT",
		},
		{
			name:      "missing placeholder",
			template:  "${name} ${description}",
			variables: map[string]interface{}{"name": "x"},
			hasError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := engine.Parse(tt.name, tt.template)
			require.NoError(t, err)

			result, err := tmpl.Execute(tt.variables)
			if tt.hasError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTemplate)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTemplate_Placeholders(t *testing.T) {
	tmpl, err := NewTemplateEngine().Parse("getter", "${name} ${description} ${name} ${ .x | lower }")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "description"}, tmpl.Placeholders())
}

func TestTemplateEngine_ParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "trailing pipe", content: "${ .name | }"},
		{name: "leading pipe", content: "${ | upper }"},
		{name: "empty command between pipes", content: "${ .name | | upper }"},
		{name: "empty placeholder", content: "value: ${ }"},
		{name: "unknown function", content: "${ .name | nosuchfunc }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemplateEngine().Parse("broken", tt.content)
			require.ErrorIs(t, err, ErrTemplate)
		})
	}

	t.Run("valid pipeline", func(t *testing.T) {
		tmpl, err := NewTemplateEngine().Parse("ok", "${ .name | upper }")
		require.NoError(t, err)

		out, err := tmpl.Execute(map[string]interface{}{"name": "x"})
		require.NoError(t, err)
		assert.Equal(t, "X", out)
	})
}

func TestDefaultTemplates(t *testing.T) {
	templates, err := DefaultTemplates()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"name", "fullname", "description", "outcome_name", "constructor_method", "constants",
		"args", "process_methods", "get_methods", "units", "min_units", "max_units",
	}, templates.Industry.Placeholders())
	assert.ElementsMatch(t, []string{"name", "args", "description", "operation"}, templates.ProcessMethod.Placeholders())
	assert.ElementsMatch(t, []string{"name", "description"}, templates.Getter.Placeholders())

	getter, err := templates.Getter.Execute(map[string]interface{}{"name": "co2", "description": "CO2 emissions"})
	require.NoError(t, err)
	assert.Contains(t, getter, "def get_co2(self) -> float:")
	assert.Contains(t, getter, "return self.__co2")
}

func TestLoadTemplates_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GetterTemplateFile), []byte("get ${name}"), 0o600))

	templates, err := LoadTemplates(dir)
	require.NoError(t, err)

	assert.Equal(t, "get ${name}", templates.Getter.Source())

	defaults, err := DefaultTemplates()
	require.NoError(t, err)
	assert.Equal(t, defaults.Industry.Source(), templates.Industry.Source(), "absent files fall back to the defaults")
}

func TestLoadTemplates_Unreadable(t *testing.T) {
	dir := t.TempDir()
	// a directory where a file is expected cannot be read
	require.NoError(t, os.Mkdir(filepath.Join(dir, IndustryTemplateFile), 0o755))

	_, err := LoadTemplates(dir)
	assert.ErrorIs(t, err, ErrTemplate)
}
