package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/flexline/pkg/profile"
)

func fp(v float64) *float64 { return &v }

func previewProfile() profile.Profile {
	return profile.Profile{
		Name:  "split",
		Total: 100,
		Groups: map[string]profile.GroupSpec{
			"a": profile.SingleSpec(profile.RegionSpec{Share: fp(1)}),
			"b": profile.SingleSpec(profile.RegionSpec{Share: fp(3)}),
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{}
}

func TestPreviewModelAdjustsTotal(t *testing.T) {
	m := NewPreviewModel(previewProfile(), 100)
	if m.Total != 100 {
		t.Fatalf("Total = %v, want 100", m.Total)
	}
	step := m.Step

	next, _ := m.Update(keyMsg("right"))
	m = next.(PreviewModel)
	if m.Total != 100+step {
		t.Errorf("Total = %v after right, want %v", m.Total, 100+step)
	}

	next, _ = m.Update(keyMsg("left"))
	m = next.(PreviewModel)
	if m.Total != 100 {
		t.Errorf("Total = %v after left, want 100", m.Total)
	}
}

func TestPreviewModelClampsAtZero(t *testing.T) {
	m := NewPreviewModel(previewProfile(), 100)
	for i := 0; i < 50; i++ {
		next, _ := m.Update(keyMsg("left"))
		m = next.(PreviewModel)
	}
	if m.Total != 0 {
		t.Errorf("Total = %v after many lefts, want 0", m.Total)
	}
}

func TestPreviewModelView(t *testing.T) {
	m := NewPreviewModel(previewProfile(), 100)
	view := m.View()

	if !strings.Contains(view, "split") {
		t.Error("view should contain the profile name")
	}
	for _, key := range []string{"a", "b"} {
		if !strings.Contains(view, key) {
			t.Errorf("view should list group %q", key)
		}
	}
	if !strings.Contains(view, "75.0%") {
		t.Error("view should show b's 75.0% share of the total")
	}
}

func TestPreviewModelInfeasibleShowsWarning(t *testing.T) {
	p := profile.Profile{
		Name:  "tight",
		Total: 100,
		Groups: map[string]profile.GroupSpec{
			"a": profile.SingleSpec(profile.RegionSpec{Max: fp(10)}),
		},
	}
	m := NewPreviewModel(p, 100)
	if !strings.Contains(m.View(), "infeasible") {
		t.Error("view should surface the infeasible error")
	}
}
