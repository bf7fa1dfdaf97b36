package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatsCollector exports pgxpool connection statistics as Prometheus
// metrics, labeled by service.
type PoolStatsCollector struct {
	pool    *pgxpool.Pool
	service string

	acquiredConns      *prometheus.Desc
	idleConns          *prometheus.Desc
	totalConns         *prometheus.Desc
	maxConns           *prometheus.Desc
	constructingConns  *prometheus.Desc
	acquireCount       *prometheus.Desc
	acquireDuration    *prometheus.Desc
	canceledAcquires   *prometheus.Desc
	emptyAcquires      *prometheus.Desc
	newConnsCount      *prometheus.Desc
	maxLifetimeDestroy *prometheus.Desc
	maxIdleDestroy     *prometheus.Desc
}

func poolDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(name, help, []string{"service"}, nil)
}

// NewPoolStatsCollector builds a collector over the given pool. Describe
// works without a live pool; Collect requires one.
func NewPoolStatsCollector(pool *pgxpool.Pool, service string) *PoolStatsCollector {
	return &PoolStatsCollector{
		pool:               pool,
		service:            service,
		acquiredConns:      poolDesc("db_pool_acquired_connections", "Number of currently acquired connections"),
		idleConns:          poolDesc("db_pool_idle_connections", "Number of currently idle connections"),
		totalConns:         poolDesc("db_pool_total_connections", "Total number of connections in the pool"),
		maxConns:           poolDesc("db_pool_max_connections", "Maximum number of connections allowed"),
		constructingConns:  poolDesc("db_pool_constructing_connections", "Number of connections currently being constructed"),
		acquireCount:       poolDesc("db_pool_acquire_count_total", "Total number of connection acquires"),
		acquireDuration:    poolDesc("db_pool_acquire_duration_seconds_total", "Total time spent acquiring connections in seconds"),
		canceledAcquires:   poolDesc("db_pool_canceled_acquire_count_total", "Total number of canceled connection acquires"),
		emptyAcquires:      poolDesc("db_pool_empty_acquire_count_total", "Total number of acquires that had to wait for a connection"),
		newConnsCount:      poolDesc("db_pool_new_connections_total", "Total number of new connections created"),
		maxLifetimeDestroy: poolDesc("db_pool_max_lifetime_destroy_total", "Total connections destroyed due to max lifetime"),
		maxIdleDestroy:     poolDesc("db_pool_max_idle_destroy_total", "Total connections destroyed due to max idle time"),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs() {
		ch <- d
	}
}

func (c *PoolStatsCollector) descs() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.acquiredConns, c.idleConns, c.totalConns, c.maxConns,
		c.constructingConns, c.acquireCount, c.acquireDuration,
		c.canceledAcquires, c.emptyAcquires, c.newConnsCount,
		c.maxLifetimeDestroy, c.maxIdleDestroy,
	}
}

// Collect implements prometheus.Collector by snapshotting pool stats.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()

	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, c.service)
	}
	counter := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v, c.service)
	}

	gauge(c.acquiredConns, float64(stat.AcquiredConns()))
	gauge(c.idleConns, float64(stat.IdleConns()))
	gauge(c.totalConns, float64(stat.TotalConns()))
	gauge(c.maxConns, float64(stat.MaxConns()))
	gauge(c.constructingConns, float64(stat.ConstructingConns()))
	counter(c.acquireCount, float64(stat.AcquireCount()))
	counter(c.acquireDuration, stat.AcquireDuration().Seconds())
	counter(c.canceledAcquires, float64(stat.CanceledAcquireCount()))
	counter(c.emptyAcquires, float64(stat.EmptyAcquireCount()))
	counter(c.newConnsCount, float64(stat.NewConnsCount()))
	counter(c.maxLifetimeDestroy, float64(stat.MaxLifetimeDestroyCount()))
	counter(c.maxIdleDestroy, float64(stat.MaxIdleDestroyCount()))
}

// RegisterPoolMetrics registers a pool collector with the default registry.
func RegisterPoolMetrics(pool *pgxpool.Pool, service string) {
	prometheus.MustRegister(NewPoolStatsCollector(pool, service))
}
