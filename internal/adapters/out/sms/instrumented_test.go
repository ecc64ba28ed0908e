package sms_test

import (
	"testing"

	"repair/internal/adapters/out/sms"
	"repair/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedNotifier_CountsOutcomes(t *testing.T) {
	m := metrics.New()

	ok := sms.NewInstrumentedNotifier(sms.NewConsoleNotifier(&discardWriter{}), m.CodesSent)
	failing := sms.NewInstrumentedNotifier(sms.NewConsoleNotifier(failingWriter{}), m.CodesSent)

	require.NoError(t, ok.Send(t.Context(), testPhone(t), "code 1234"))
	require.NoError(t, ok.Send(t.Context(), testPhone(t), "code 5678"))
	require.Error(t, failing.Send(t.Context(), testPhone(t), "code 0000"))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "repair_verification_codes_sent_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "outcome" {
					got[l.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"ok": 2, "error": 1}, got)
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }
