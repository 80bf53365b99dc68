package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/shelter-console/internal/domain/catalog"
	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
)

func TestEnterSubmitsCurrentFields(t *testing.T) {
	submitter := &stubSubmitter{}
	m := newModelUnderTest(viewstate.New(), submitter)

	m = update(t, m, catalogLoadedMsg{catalog: catalog.Defaults()})
	m = typeText(t, m, "2024-01-15")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "-5")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, forecast.FormInput{Date: "2024-01-15", Sector: "Men", Temperature: "-5"}, submitter.last)

	next, _ = next.Update(msg)
	require.Empty(t, next.(Model).statusText)
}

func TestShiftTabWrapsFocus(t *testing.T) {
	m := newModelUnderTest(viewstate.New(), &stubSubmitter{})
	require.Equal(t, fieldDate, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, fieldTemperature, m.focus)
	require.True(t, m.inputs[fieldTemperature].Focused())
	require.False(t, m.inputs[fieldDate].Focused())
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	view := viewstate.New()
	submitter := &stubSubmitter{}
	m := newModelUnderTest(view, submitter)

	view.ShowLoading()
	m = update(t, m, snapshotMsg{snapshot: view.Snapshot(), ok: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Zero(t, submitter.calls)
	require.Contains(t, m.View(), "Predicting...")
}

func TestSnapshotFillsDefaultDateAndRendersPanels(t *testing.T) {
	view := viewstate.New()
	m := newModelUnderTest(view, &stubSubmitter{})

	view.SetDefaults("2024-03-01")
	view.SetHealth(forecast.HealthOffline)
	view.ShowResult(forecast.PredictionResult{Date: "2024-01-15", Sector: "Youth", MinTempCelsius: 2.5, PredictedShelterDemand: 1500})
	m = update(t, m, snapshotMsg{snapshot: view.Snapshot(), ok: true})

	require.Equal(t, "2024-03-01", m.inputs[fieldDate].Value())
	out := m.View()
	require.Contains(t, out, "Offline")
	require.Contains(t, out, "1,500 beds")
	require.Contains(t, out, "Monday, January 15, 2024")

	view.ShowError("Prediction failed")
	m = update(t, m, snapshotMsg{snapshot: view.Snapshot(), ok: true})
	out = m.View()
	require.Contains(t, out, "Prediction failed")
	require.NotContains(t, out, "1,500 beds")
}

func TestRejectedOutcomeShowsStatus(t *testing.T) {
	m := newModelUnderTest(viewstate.New(), &stubSubmitter{})
	m = update(t, m, submittedMsg{outcome: submission.Outcome{Status: submission.StatusRejected, Message: submission.RejectedMessage}})
	require.Contains(t, m.View(), submission.RejectedMessage)
}

func TestEscCancelsAndQuits(t *testing.T) {
	submitter := &stubSubmitter{}
	m := newModelUnderTest(viewstate.New(), submitter)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.Equal(t, 1, submitter.cancels)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func newModelUnderTest(view *viewstate.ViewState, submitter *stubSubmitter) Model {
	return NewModel(submitter, view, stubCatalog{})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

type stubSubmitter struct {
	last    forecast.FormInput
	calls   int
	cancels int
}

func (s *stubSubmitter) Submit(ctx context.Context, in forecast.FormInput) submission.Outcome {
	s.calls++
	s.last = in
	return submission.Outcome{Status: submission.StatusSucceeded}
}

func (s *stubSubmitter) Cancel() {
	s.cancels++
}

type stubCatalog struct{}

func (stubCatalog) Catalog(context.Context) forecast.Catalog {
	return catalog.Defaults()
}
