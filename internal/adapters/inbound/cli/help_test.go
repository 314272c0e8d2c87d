package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiready/aiready/internal/adapters/inbound/cli"
)

func TestCommandHelp(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--help"}, "--no-color"},
		{[]string{"scan", "--help"}, "--max-rating"},
		{[]string{"names", "--help"}, "--kind"},
		{[]string{"init", "--help"}, "--force"},
		{[]string{"mcp", "--help"}, "serve"},
		{[]string{"mcp", "serve", "--help"}, "--path"},
		{[]string{"version", "--help"}, "version"},
	}
	for _, tc := range cases {
		t.Run(tc.args[0], func(t *testing.T) {
			var out bytes.Buffer
			root := cli.NewRootCmdForTest()
			root.SetOut(&out)
			root.SetArgs(tc.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	root := cli.NewRootCmdForTest()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"score"})
	assert.Error(t, root.Execute())
}
