package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/planb/internal/metrics"
)

func gather(t *testing.T, name string) []*familyPoint {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var out []*familyPoint
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			p := &familyPoint{labels: map[string]string{}}
			for _, l := range m.GetLabel() {
				p.labels[l.GetName()] = l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				p.value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				p.value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				p.value = float64(m.GetHistogram().GetSampleCount())
			}
			out = append(out, p)
		}
	}
	return out
}

type familyPoint struct {
	labels map[string]string
	value  float64
}

func find(points []*familyPoint, labels map[string]string) float64 {
	for _, p := range points {
		match := true
		for k, v := range labels {
			if p.labels[k] != v {
				match = false
			}
		}
		if match {
			return p.value
		}
	}
	return 0
}

func TestResult(t *testing.T) {
	assert.Equal(t, metrics.ResultOK, metrics.Result(true, nil))
	assert.Equal(t, metrics.ResultNoRoute, metrics.Result(false, nil))
	assert.Equal(t, metrics.ResultError, metrics.Result(true, errors.New("x")))
}

func TestObserveQuery(t *testing.T) {
	before := find(gather(t, "planb_query_total"), map[string]string{"kind": "test", "result": "no_route"})
	metrics.ObserveQuery("test", time.Now(), false, nil)
	after := find(gather(t, "planb_query_total"), map[string]string{"kind": "test", "result": "no_route"})
	assert.Equal(t, before+1, after)
	assert.GreaterOrEqual(t, find(gather(t, "planb_query_duration_seconds"), map[string]string{"kind": "test"}), 1.0)
}

func TestSetMap(t *testing.T) {
	metrics.SetMap(8035, 13826)
	assert.Equal(t, 8035.0, find(gather(t, "planb_map_systems"), nil))
	assert.Equal(t, 13826.0, find(gather(t, "planb_map_gates"), nil))
}

func TestObserveBuild(t *testing.T) {
	okBefore := find(gather(t, "planb_table_build_total"), map[string]string{"result": "ok"})
	metrics.ObserveBuild(time.Second, nil)
	metrics.ObserveBuild(0, errors.New("cancelled"))
	assert.Equal(t, okBefore+1, find(gather(t, "planb_table_build_total"), map[string]string{"result": "ok"}))
	assert.GreaterOrEqual(t, find(gather(t, "planb_table_build_total"), map[string]string{"result": "error"}), 1.0)
}
