package web

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("dashboard.html"))
}

// имена счётчиков из CSV не должны попадать в карту как HTML
func TestDashboard_MapLabelsAreText(t *testing.T) {
	page, err := templateData.ReadFile("templates/dashboard.html")
	require.NoError(t, err)

	bindings := regexp.MustCompile(`bind(Popup|Tooltip)\(([^)]*)\)`).FindAllSubmatch(page, -1)
	require.NotEmpty(t, bindings)
	for _, b := range bindings {
		assert.Regexp(t, `^textNode\(`, string(b[2]), "bind%s", b[1])
	}
}
