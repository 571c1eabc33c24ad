package pipeline_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/config"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/geocode"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/pipeline"
)

// fixedLine builds a space-padded record line with field values placed at
// their start columns.
func fixedLine(prefix string, fields map[int]string) string {
	buf := make([]byte, 370)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, prefix)
	for start, value := range fields {
		copy(buf[start:], value)
	}
	return string(buf)
}

// sampleOrderFile is a one-order file with a complete ship-to customer and
// an incomplete second address.
func sampleOrderFile() string {
	lines := []string{
		"$$HDR20260829",
		fixedLine("H1", map[int]string{2: "ORD0000000001", 17: "20260815", 85: "GBP"}),
		fixedLine("H2", map[int]string{
			17:  "STGB0001",
			35:  "ACME BOOKS LTD",
			85:  "10 DOWNING STREET",
			235: "orders@acme.example",
			285: "LONDON",
			320: "SW1A 1AA",
			330: "GBR",
			334: "02079460000",
		}),
		fixedLine("H2", map[int]string{
			17: "STGB0002",
			35: "INCOMPLETE LTD",
			85: "2 HALF STREET",
		}),
		fixedLine("D1", map[int]string{2: "00001", 7: "REF-001", 27: "9780140449136", 40: "2", 46: "500"}),
		"$$EOF",
	}
	return strings.Join(lines, "\n") + "\n"
}

// newTestConfig builds a config rooted in a temp dir with an input file
// already in place.
func newTestConfig(t *testing.T) (*config.MainConfig, string) {
	t.Helper()
	root := t.TempDir()

	cfg := &config.MainConfig{
		InputDir:         filepath.Join(root, "input"),
		OutputDir:        filepath.Join(root, "output"),
		InputArchiveDir:  filepath.Join(root, "archive"),
		Layout:           "standard",
		LogLevel:         "error",
		ReportNameFormat: "{original}_report",
	}
	cfg.Geocode.RequestDelayMs = 1
	cfg.Geocode.MaxRetries = 1
	cfg.Geocode.RetryDelayMs = 1
	cfg.Geocode.TimeoutSeconds = 2

	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	inputPath := filepath.Join(cfg.InputDir, "orders.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleOrderFile()), 0644))

	return cfg, inputPath
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func Test_OrderPipeline_Run(t *testing.T) {
	t.Run("processes the file and archives it", func(t *testing.T) {
		cfg, inputPath := newTestConfig(t)

		result := pipeline.NewOrderPipeline(inputPath, cfg, quietLogger()).Run()

		require.NoError(t, result.Error)
		assert.True(t, result.Success)

		assert.Equal(t, 1, result.Stats.Orders)
		assert.Equal(t, 2, result.Stats.Customers)
		assert.Equal(t, 1, result.Stats.LineItems)
		// The second customer is missing city/postcode/phone.
		assert.Equal(t, 1, result.Stats.ErrorOrders)

		assert.Equal(t, filepath.Join(cfg.OutputDir, "orders_report.csv"), result.CSVReport)
		assert.FileExists(t, result.CSVReport)
		assert.FileExists(t, result.XLSXReport)

		assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "orders.txt"), result.ArchivePath)
		assert.NoFileExists(t, inputPath)
	})

	t.Run("archival can be disabled", func(t *testing.T) {
		cfg, inputPath := newTestConfig(t)
		cfg.DisableArchive = true

		result := pipeline.NewOrderPipeline(inputPath, cfg, quietLogger()).Run()

		require.NoError(t, result.Error)
		assert.FileExists(t, inputPath)
	})

	t.Run("missing input file fails the run", func(t *testing.T) {
		cfg, _ := newTestConfig(t)

		result := pipeline.NewOrderPipeline(filepath.Join(cfg.InputDir, "missing.txt"), cfg, quietLogger()).Run()

		assert.False(t, result.Success)
		require.Error(t, result.Error)
	})
}

func Test_AddressPipeline_Run(t *testing.T) {
	t.Run("local-only run skips geocoding", func(t *testing.T) {
		cfg, inputPath := newTestConfig(t)

		var progress []int
		p := pipeline.NewAddressPipeline(inputPath, cfg, nil, quietLogger())
		p.Progress = func(done, total int) {
			progress = append(progress, done)
			assert.Equal(t, 2, total)
		}

		result := p.Run(context.Background())

		require.NoError(t, result.Error)
		assert.True(t, result.Success)

		assert.Equal(t, 2, result.Stats.Total)
		assert.Equal(t, 1, result.Stats.Valid)
		assert.Equal(t, 1, result.Stats.Invalid)
		assert.Zero(t, result.Stats.Geocoded)

		assert.Equal(t, []int{1, 2}, progress)

		assert.FileExists(t, result.CSVReport)
		assert.FileExists(t, result.XLSXReport)
		require.NotEmpty(t, result.InvalidReport)
		assert.FileExists(t, result.InvalidReport)

		// Address runs never archive the input.
		assert.FileExists(t, inputPath)
	})

	t.Run("geocodes only locally valid addresses", func(t *testing.T) {
		cfg, inputPath := newTestConfig(t)

		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			fmt.Fprint(w, `{
				"features": [{
					"properties": {"formatted": "10 Downing Street, London", "rank": {"confidence": 0.9}},
					"geometry": {"coordinates": [-0.1276, 51.5033]}
				}]
			}`)
		}))
		t.Cleanup(server.Close)

		client := geocode.NewClient("test-key", server.URL, time.Second)
		verifier := geocode.NewVerifierWithRetries(client, 1, time.Millisecond)

		result := pipeline.NewAddressPipeline(inputPath, cfg, verifier, quietLogger()).Run(context.Background())

		require.NoError(t, result.Error)
		assert.Equal(t, 2, result.Stats.Total)
		assert.Equal(t, 1, result.Stats.Geocoded, "the incomplete address must not reach the service")
		assert.Equal(t, 1, requests)
		assert.Equal(t, 1, result.Stats.Valid)
		assert.Equal(t, 1, result.Stats.Invalid)
	})

	t.Run("cancellation stops the batch", func(t *testing.T) {
		cfg, inputPath := newTestConfig(t)
		cfg.Geocode.RequestDelayMs = 1000

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"features": []}`)
		}))
		t.Cleanup(server.Close)

		client := geocode.NewClient("test-key", server.URL, time.Second)
		verifier := geocode.NewVerifierWithRetries(client, 0, time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		p := pipeline.NewAddressPipeline(inputPath, cfg, verifier, quietLogger())
		p.Progress = func(done, total int) {
			if done == 1 {
				cancel()
			}
		}

		result := p.Run(ctx)

		// The first address completes, the inter-request pause observes the
		// cancellation, and the reports still cover what was processed.
		require.NoError(t, result.Error)
		assert.Equal(t, 1, result.Stats.Total)
		assert.FileExists(t, result.CSVReport)
	})
}
