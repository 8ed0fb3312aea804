// Package metrics счётчики сервиса в формате Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "proposer"

// Metrics набор счётчиков. Каждый экземпляр живёт в своём реестре,
// поэтому тесты могут создавать их сколько угодно.
type Metrics struct {
	registry *prometheus.Registry

	ProposalsGenerated prometheus.Counter
	FallbackTemplates  prometheus.Counter
	EmptyPool          prometheus.Counter
	GeneratorCalls     *prometheus.CounterVec
	TemplateOperations *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их вместе со стандартными коллекторами процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		ProposalsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_generated_total",
			Help:      "Число сгенерированных предложений.",
		}),
		FallbackTemplates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_templates_total",
			Help:      "Число гибридных шаблонов, собранных из неразобранного ответа модели.",
		}),
		EmptyPool: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_pool_total",
			Help:      "Число запросов генерации при пустой библиотеке шаблонов.",
		}),
		GeneratorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_calls_total",
			Help:      "Вызовы генератора по типу запроса.",
		}, []string{"kind"}),
		TemplateOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_operations_total",
			Help:      "Операции с шаблонами по типу и категории.",
		}, []string{"operation", "category"}),
	}

	reg.MustRegister(
		m.ProposalsGenerated,
		m.FallbackTemplates,
		m.EmptyPool,
		m.GeneratorCalls,
		m.TemplateOperations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry возвращает реестр (для тестов и дополнительных коллекторов).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдаёт метрики в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
