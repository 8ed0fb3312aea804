package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/metrics"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/prompt"
)

// Ответ при пустой библиотеке шаблонов.
const (
	NoTemplatesProposal = "Nenhum template disponível para gerar uma proposta."
	NoTemplatesReport   = "Não há templates no sistema. Adicione alguns para começar."
)

const (
	minInspirations = 2
	maxInspirations = 3
)

// ProposalStore часть хранилища шаблонов, нужная генерации.
type ProposalStore interface {
	ListAll() (models.TemplateListing, error)
	Save(category models.TemplateCategory, tpl models.ProposalTemplate) (string, error)
	RecordUsage(filename string) error
}

// InspirationPicker выбирает шаблоны-образцы из библиотеки.
type InspirationPicker func(pool []models.ProposalTemplate) []models.ProposalTemplate

// ProposalService собирает гибридный шаблон из библиотеки и пишет отчёт о нём.
type ProposalService struct {
	store     ProposalStore
	generator ai.TextGenerator
	profile   *prompt.BusinessProfile
	metrics   *metrics.Metrics
	pick      InspirationPicker

	rngMu sync.Mutex
	rng   *rand.Rand
}

// ProposalOption настраивает ProposalService.
type ProposalOption func(*ProposalService)

// WithRand задаёт источник случайности для выбора образцов.
func WithRand(rng *rand.Rand) ProposalOption {
	return func(s *ProposalService) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithInspirations фиксирует выбор образцов (для тестов).
func WithInspirations(pick InspirationPicker) ProposalOption {
	return func(s *ProposalService) {
		s.pick = pick
	}
}

// WithBusinessProfile добавляет описание бизнеса в запрос гибрида.
func WithBusinessProfile(profile *prompt.BusinessProfile) ProposalOption {
	return func(s *ProposalService) {
		s.profile = profile
	}
}

// WithMetrics подключает счётчики.
func WithMetrics(m *metrics.Metrics) ProposalOption {
	return func(s *ProposalService) {
		s.metrics = m
	}
}

// NewProposalService создаёт сервис генерации предложений.
func NewProposalService(store ProposalStore, generator ai.TextGenerator, opts ...ProposalOption) *ProposalService {
	s := &ProposalService{
		store:     store,
		generator: generator,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pick == nil {
		s.pick = s.sample
	}
	return s
}

// Generate создаёт новый шаблон из 2-3 случайных образцов, сохраняет его
// в каталог ai и возвращает тело предложения вместе с отчётом.
func (s *ProposalService) Generate(ctx context.Context, pc models.ProposalContext, media []models.MediaAttachment) (models.GeneratedProposal, error) {
	log := logger.WithComponent("proposal_service")

	listing, err := s.store.ListAll()
	if err != nil {
		return models.GeneratedProposal{}, apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível ler os templates")
	}

	pool := listing.Pool()
	if len(pool) == 0 {
		log.Warn("библиотека шаблонов пуста, генерация пропущена")
		s.inc(func(m *metrics.Metrics) { m.EmptyPool.Inc() })
		return models.GeneratedProposal{Proposal: NoTemplatesProposal, Report: NoTemplatesReport}, nil
	}

	inspirations := s.pick(pool)
	clientContext := prompt.ClientContext(pc)

	raw := s.generator.Generate(ctx, prompt.Hybrid(clientContext, inspirations, s.profile), media)
	s.inc(func(m *metrics.Metrics) { m.GeneratorCalls.WithLabelValues("hybrid").Inc() })

	result := ai.ParseHybrid(raw)
	if result.Kind == ai.HybridFallback {
		log.Warn("ответ модели не разобран как JSON, сохраняем запасной шаблон")
		s.inc(func(m *metrics.Metrics) { m.FallbackTemplates.Inc() })
	}

	saved, err := s.store.Save(models.CategoryAI, result.Template)
	if err != nil {
		return models.GeneratedProposal{}, apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível salvar o template gerado")
	}
	if err := s.store.RecordUsage(saved); err != nil {
		return models.GeneratedProposal{}, apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível registrar o uso do template")
	}

	report := s.generator.Generate(ctx, prompt.Report(clientContext, inspirations, result.Template), nil)
	s.inc(func(m *metrics.Metrics) { m.GeneratorCalls.WithLabelValues("report").Inc() })

	names := make([]string, 0, len(inspirations))
	for _, tpl := range inspirations {
		names = append(names, tpl.Filename)
	}

	log.WithFields(logrus.Fields{
		"template":     saved,
		"inspirations": names,
		"result":       result.Kind.String(),
	}).Info("предложение сгенерировано")
	s.inc(func(m *metrics.Metrics) { m.ProposalsGenerated.Inc() })

	return models.GeneratedProposal{
		Proposal:     result.Template.Body,
		Report:       report,
		TemplateName: saved,
		Inspirations: names,
	}, nil
}

// sample выбирает k из {2, 3} образцов без повторов, но не больше размера библиотеки.
func (s *ProposalService) sample(pool []models.ProposalTemplate) []models.ProposalTemplate {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	k := minInspirations + s.rng.Intn(maxInspirations-minInspirations+1)
	if k > len(pool) {
		k = len(pool)
	}

	picked := make([]models.ProposalTemplate, 0, k)
	for _, idx := range s.rng.Perm(len(pool))[:k] {
		picked = append(picked, pool[idx])
	}
	return picked
}

func (s *ProposalService) inc(fn func(*metrics.Metrics)) {
	if s.metrics != nil {
		fn(s.metrics)
	}
}
