package acquire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adscout-br/adscout/internal/config"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPageLooksBlocked(t *testing.T) {
	blockedBySelector := docFromHTML(t, `<html><body><div class="g-recaptcha"></div></body></html>`)
	assert.True(t, pageLooksBlocked(blockedBySelector))

	blockedByText := docFromHTML(t, `<html><body><p>Please complete the captcha to continue</p></body></html>`)
	assert.True(t, pageLooksBlocked(blockedByText))

	clean := docFromHTML(t, `<html><body><div role="article">anúncio normal</div></body></html>`)
	assert.False(t, pageLooksBlocked(clean))
}

const sampleAdHTML = `<html><body>
<div role="article">
  <a data-testid="page-name-link" href="https://www.facebook.com/123456789/">Loja Exemplo</a>
  <h3>Tênis de corrida premium</h3>
  <p>Conforto para treinos longos, disponível em 3 cores.</p>
  <a href="https://l.facebook.com/l.php?u=https%3A%2F%2Floja.com&ad_id=987">Comprar</a>
  <span aria-label="started running">Ad started Mar 3, 2025</span>
  <img src="creative.jpg">
</div>
</body></html>`

func TestStaticFragment(t *testing.T) {
	doc := docFromHTML(t, sampleAdHTML)
	container := doc.Find(`[role="article"]`).First()
	require.Equal(t, 1, container.Length())

	frag := staticFragment(container, "https://example.test/listing")

	assert.Equal(t, "Loja Exemplo", frag.AdvertiserName)
	assert.Equal(t, "https://www.facebook.com/123456789/", frag.AdvertiserURL)
	require.NotEmpty(t, frag.HeadlineCandidates)
	assert.Equal(t, "Tênis de corrida premium", frag.HeadlineCandidates[0])
	require.NotEmpty(t, frag.LandingURLCandidates)
	assert.Contains(t, frag.LandingURLCandidates[0], "l.facebook.com")
	assert.Equal(t, "Ad started Mar 3, 2025", frag.DateText)
	assert.Equal(t, "987", frag.AdID)
	assert.True(t, frag.HasImage)
	assert.False(t, frag.HasVideo)
	assert.Equal(t, "https://example.test/listing", frag.ContextURL)
	assert.False(t, frag.Empty())
}

func TestStaticFragmentBareContainer(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div role="article"></div></body></html>`)
	frag := staticFragment(doc.Find(`[role="article"]`).First(), "ctx")
	assert.True(t, frag.Empty())
}

func TestFetchDocument(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte(`<html><body><p>ok</p></body></html>`))
	}))
	defer srv.Close()

	a := NewStaticAcquirer(config.Config{NavTimeout: 5 * time.Second}, zap.NewNop(), nil)
	doc, err := a.fetchDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("p").Text())
	assert.NotEmpty(t, gotUA)
	assert.Contains(t, gotLang, "pt-BR")
}

func TestFetchDocumentNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewStaticAcquirer(config.Config{NavTimeout: 5 * time.Second}, zap.NewNop(), nil)
	_, err := a.fetchDocument(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
