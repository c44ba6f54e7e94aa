package acquire

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/models"
	"go.uber.org/zap"
)

// demoAdvertisers are plausible storefronts for generated results. The mix
// intentionally includes storefront-builder domains so the dropshipping
// classifier has something to flag.
var demoAdvertisers = []struct {
	name   string
	domain string
}{
	{"Solar Tech BR", "solartech.myshopify.com"},
	{"Lumina Store", "luminastore.com.br"},
	{"Casa Solar", "casasolar.tray.com.br"},
	{"Eco Light Brasil", "ecolight.yampi.com.br"},
	{"Smart Solar BR", "smartsolar.nuvemshop.com.br"},
	{"Vitrine Nova", "vitrinenova.com.br"},
	{"Loja do Produto", "lojadoproduto.cartpanda.com.br"},
	{"Oferta Express", "ofertaexpress.com.br"},
}

// DemoAcquirer generates plausible fragments without touching the network.
// It exists for demos and local development, and exercises the exact same
// downstream path as the real backends.
type DemoAcquirer struct {
	cfg    config.Config
	logger *zap.Logger
	rng    *rand.Rand
	now    func() time.Time
}

// NewDemoAcquirer constructs the offline demo backend.
func NewDemoAcquirer(cfg config.Config, logger *zap.Logger) *DemoAcquirer {
	return &DemoAcquirer{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

func (a *DemoAcquirer) Name() string { return config.BackendDemo }

// Fetch generates depth-many demo fragments for the query.
func (a *DemoAcquirer) Fetch(ctx context.Context, query string, depth models.Depth) ([]models.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count, ok := demoCountByDepth[depth]
	if !ok {
		count = demoCountByDepth[models.DepthStandard]
	}
	if count > len(demoAdvertisers) {
		count = len(demoAdvertisers)
	}

	contextURL := librarySearchURL(query)
	titled := titleCase(query)

	frags := make([]models.Fragment, 0, count)
	for i := 0; i < count; i++ {
		adv := demoAdvertisers[i]
		startDate := a.now().AddDate(0, 0, -(1 + a.rng.Intn(60))).Format("2006-01-02")

		frag := models.Fragment{
			AdvertiserName: adv.name,
			HeadlineCandidates: []string{
				fmt.Sprintf("%s com Sensor de Movimento - Frete Grátis!", titled),
			},
			TextCandidates: []string{
				fmt.Sprintf("Descubra %s! Tecnologia avançada, economia garantida. Disponível em %d cores. Aproveite a promoção!",
					query, 1+a.rng.Intn(5)),
			},
			LandingURLCandidates:   []string{"https://" + adv.domain},
			DateText:               startDate,
			ContextURL:             contextURL,
			AdvertiserActiveAdsEst: 5 + a.rng.Intn(46),
		}
		if a.rng.Intn(2) == 0 {
			frag.HasVideo = true
		} else {
			frag.HasImage = true
		}
		frags = append(frags, frag)
	}

	a.logger.Info("generated demo fragments", zap.Int("count", len(frags)), zap.String("query", query))
	return frags, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
