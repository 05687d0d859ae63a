package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

const cardTemplateName = "recipe_card.html"

// CardRow is one ingredient line of a recipe card
type CardRow struct {
	models.RowView
	Grams float64
}

// CardData is the data passed to the recipe card template
type CardData struct {
	Formula     *models.FormulaView
	Rows        []CardRow
	Amount      *models.AmountResponse
	Advice      *models.RecipeAdvice
	GeneratedAt time.Time
}

// CardService renders recipe cards as HTML, PDF and PNG
type CardService struct {
	baseURL     string // Base URL of this server, used by the headless browser
	templateDir string
	chromePath  string
}

// NewCardService creates a new CardService
func NewCardService(baseURL, templateDir, chromePath string) *CardService {
	if templateDir == "" {
		templateDir = "templates"
	}
	return &CardService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		templateDir: templateDir,
		chromePath:  chromePath,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path, CHROME_PATH, then common installation paths
func (s *CardService) detectChromePath() string {
	candidates := []string{s.chromePath, os.Getenv("CHROME_PATH")}
	candidates = append(candidates,
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	)
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// BuildCardData assembles the template data; amount and advice are optional
// Each row's grams share the amount total in proportion to its ratio
func BuildCardData(view *models.FormulaView, amount *models.AmountResponse, advice *models.RecipeAdvice) CardData {
	data := CardData{
		Formula:     view,
		Rows:        make([]CardRow, 0, len(view.Rows)),
		Amount:      amount,
		Advice:      advice,
		GeneratedAt: time.Now(),
	}
	for _, r := range view.Rows {
		if r.Code == "" {
			continue
		}
		row := CardRow{RowView: r}
		if amount != nil && view.InputRatio > 0 {
			row.Grams = roundTenth(amount.Total * r.Ratio / view.InputRatio)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// RenderCardHTML renders the recipe card template
func (s *CardService) RenderCardHTML(data CardData) (string, error) {
	funcs := template.FuncMap{
		"grams":   utils.FormatGrams,
		"percent": utils.FormatPercent,
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
	}

	templatePath := filepath.Join(s.templateDir, cardTemplateName)
	tmpl, err := template.New(cardTemplateName).Funcs(funcs).ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// newBrowser starts a headless browser context
func (s *CardService) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// renderURL is the HTML card endpoint the browser loads
func (s *CardService) renderURL(formulaID, query string) string {
	u := fmt.Sprintf("%s/formulas/%s/card?format=html", s.baseURL, formulaID)
	if query != "" {
		u += "&" + query
	}
	return u
}

// GeneratePDF prints the card of a formula session to an A6 PDF
// query carries extra card parameters (hairLength, total) through to the HTML endpoint
func (s *CardService) GeneratePDF(ctx context.Context, formulaID, query string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	browserCtx, browserCancel := s.newBrowser(ctx)
	defer browserCancel()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(397, 559), // 105mm x 148mm at 96 DPI
		chromedp.Navigate(s.renderURL(formulaID, query)),
		chromedp.WaitReady(".card"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 105mm x 148mm = 4.13" x 5.83"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(4.13).
				WithPaperHeight(5.83).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Info("✓ GeneratePDF: recipe card printed", zap.String("formula", formulaID), zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}

// GeneratePNG captures the card of a formula session as a PNG
func (s *CardService) GeneratePNG(ctx context.Context, formulaID, query string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	browserCtx, browserCancel := s.newBrowser(ctx)
	defer browserCancel()

	var pngBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(397, 559, chromedp.EmulateScale(2)),
		chromedp.Navigate(s.renderURL(formulaID, query)),
		chromedp.WaitReady(".card"),
		chromedp.Screenshot(".card", &pngBuf, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	logger.Info("✓ GeneratePNG: recipe card captured", zap.String("formula", formulaID), zap.Int("bytes", len(pngBuf)))
	return pngBuf, nil
}

func roundTenth(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
