package prometheus

import (
	"errors"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := promclient.NewRegistry()
	c := New(reg)

	c.RecordRoute("dijkstra", 120, 5*time.Millisecond, nil)
	c.RecordRoute("dijkstra", 0, time.Millisecond, errors.New("no route"))
	c.RecordRoute("bfs", 10, time.Millisecond, nil)
	c.RecordLoad(20*time.Millisecond, nil)
	c.RecordPersist(3*time.Millisecond, errors.New("denied"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues("dijkstra", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues("dijkstra", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues("bfs", "success")))

	// Failed routes are not observed in the iteration histogram.
	assert.Equal(t, 2, testutil.CollectAndCount(c.routeIterations))
	assert.Equal(t, 2, testutil.CollectAndCount(c.opDuration))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"graphmaps_routes_total",
		"graphmaps_route_duration_seconds",
		"graphmaps_route_iterations",
		"graphmaps_operation_duration_seconds",
	}, names)
}

func TestCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := promclient.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
