package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggldash/internal/domain"
)

func TestResolveRange_DefaultsToToday(t *testing.T) {
	r, err := resolveRange("", "", false)
	require.NoError(t, err)
	assert.Contains(t, r.Label, "Today")
}

func TestResolveRange_Yesterday(t *testing.T) {
	r, err := resolveRange("", "", true)
	require.NoError(t, err)
	assert.Contains(t, r.Label, "Yesterday")
}

func TestResolveRange_FromOnlyIsSingleDay(t *testing.T) {
	r, err := resolveRange("2026-02-02", "", false)
	require.NoError(t, err)
	assert.Equal(t, r.StartDate(), r.EndDate())
	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.Local), r.StartDate())
}

func TestResolveRange_FromTo(t *testing.T) {
	r, err := resolveRange("2026-02-02", "2026-02-08", false)
	require.NoError(t, err)
	assert.Equal(t, 7, domain.DaysBetween(r.StartDate(), r.EndDate()))
}

func TestResolveRange_Errors(t *testing.T) {
	_, err := resolveRange("", "2026-02-08", false)
	assert.Error(t, err, "--to without --from")

	_, err = resolveRange("2026-02-08", "2026-02-02", false)
	assert.Error(t, err, "reversed range")

	_, err = resolveRange("02/08/2026", "", false)
	assert.Error(t, err, "bad format")
}

func TestNewRootCmd_RegistersReport(t *testing.T) {
	root := NewRootCmd(t.TempDir())

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "report")
	assert.NotNil(t, root.Flags().Lookup("login"))
}
