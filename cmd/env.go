package main

import (
	"context"
	"os"

	gosf "github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/assess"
	"github.com/sells-group/shell-assess/internal/domain"
	"github.com/sells-group/shell-assess/internal/fetcher"
	"github.com/sells-group/shell-assess/internal/scorer"
	"github.com/sells-group/shell-assess/internal/store"
	anthropicpkg "github.com/sells-group/shell-assess/pkg/anthropic"
	sfpkg "github.com/sells-group/shell-assess/pkg/salesforce"
)

// appEnv holds the initialized engine, store, and clients the commands
// share. Source and Scorer are nil when their credentials are not
// configured.
type appEnv struct {
	Store  store.Store
	Engine *assess.Engine
	Scorer *scorer.Scorer
	Source *fetcher.SalesforceSource
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv loads the disallowed-domain list, the scoring rubric, the store,
// and the optional API clients. A missing or unreadable domain list is
// fatal: assessments must not run without the gate. Callers should defer
// env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	badlist, err := loadBadlist(ctx)
	if err != nil {
		return nil, err
	}

	rubric := assess.DefaultConfig()
	if cfg.Assess.RubricPath != "" {
		rubric, err = assess.LoadConfig(cfg.Assess.RubricPath)
		if err != nil {
			return nil, err
		}
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	env := &appEnv{
		Store:  st,
		Engine: assess.NewEngine(domain.NewClassifier(badlist), rubric),
	}

	if cfg.Anthropic.Key != "" {
		env.Scorer = scorer.NewScorer(
			anthropicpkg.NewClient(cfg.Anthropic.Key),
			scorer.WithModel(cfg.Anthropic.Model),
		)
	} else {
		zap.L().Warn("SHELLASSESS_ANTHROPIC_KEY not set, AI confidence scoring disabled")
	}

	if cfg.Salesforce.ClientID != "" {
		sfClient, err := initSalesforce()
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		env.Source = fetcher.NewSalesforceSource(sfClient)
	} else {
		zap.L().Warn("salesforce not configured, only file inputs are available")
	}

	return env, nil
}

// loadBadlist fetches and parses the disallowed-domain list at startup.
func loadBadlist(ctx context.Context) (*domain.Badlist, error) {
	rc, err := fetcher.Open(ctx, cfg.Badlist.Source)
	if err != nil {
		return nil, eris.Wrapf(err, "load domain list %s", cfg.Badlist.Source)
	}
	defer rc.Close() //nolint:errcheck

	roots, err := domain.ParseBadlistCSV(rc)
	if err != nil {
		return nil, eris.Wrapf(err, "parse domain list %s", cfg.Badlist.Source)
	}

	zap.L().Info("domain list loaded",
		zap.String("source", cfg.Badlist.Source),
		zap.Int("roots", len(roots)))
	return domain.NewBadlist(roots), nil
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "shell-assess.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (SHELLASSESS_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := gosf.Init(gosf.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf, sfpkg.WithRateLimit(cfg.Salesforce.RateLimit)), nil
}
