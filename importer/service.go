package importer

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gokwh/config"
	"gokwh/internal/fuzzy"
	"gokwh/meter"
	"gokwh/profile"
)

// Registry is the persistence collaborator the batch service talks to. The
// core never embeds storage-specific query language; the SQLite store
// satisfies this.
type Registry interface {
	FindMeterByID(id int64) (*meter.Identity, error)
	ListMeterIdentities(siteFilter string) ([]meter.Identity, error)
	UpsertProfiles(meterID int64, daily []profile.DailyProfile, monthly []profile.MonthlyProfile) error
}

type FileStatus string

const (
	StatusSuccess     FileStatus = "success"
	StatusFailed      FileStatus = "failed"
	StatusNeedsReview FileStatus = "needs_review"
	StatusSkipped     FileStatus = "skipped"
)

// FileResult reports the outcome for one file in a batch. Per-file failures
// never abort the batch; partial success stays visible and actionable.
type FileResult struct {
	Path       string
	Status     FileStatus
	MeterID    int64
	MeterName  string
	MatchScore int
	Result     *Result
	Err        error
}

// Controller pauses, resumes, and stops a running batch. Processing checks
// the pause flag before each file and blocks, re-checking on a short fixed
// interval, until cleared; Stop abandons remaining files without rolling
// back completed ones.
type Controller struct {
	mu      sync.Mutex
	paused  bool
	stopped bool

	// pollInterval is overridable in tests; zero means the default.
	pollInterval time.Duration
}

const defaultPollInterval = 100 * time.Millisecond

func (c *Controller) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

func (c *Controller) state() (paused, stopped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused, c.stopped
}

// waitReady blocks while paused and reports whether processing may proceed.
func (c *Controller) waitReady() bool {
	interval := c.pollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	for {
		paused, stopped := c.state()
		if stopped {
			return false
		}
		if !paused {
			return true
		}
		time.Sleep(interval)
	}
}

// RunOptions tune one batch run. ForceMeterID bypasses routing entirely;
// CreateMissing registers a new meter when nothing in the registry matches
// instead of skipping the file.
type RunOptions struct {
	ForceMeterID  int64
	SiteFilter    string
	CreateMissing bool
}

// MeterCreator is implemented by registries that can mint new identities.
type MeterCreator interface {
	CreateMeter(displayName, site string) (meter.Identity, error)
}

// Service runs batch ingestion: files are processed sequentially, one file
// fully parsed, aggregated, and persisted before the next begins. Each
// file gets fresh pipeline state; the registry is the only shared resource.
type Service struct {
	Parser          Parser
	Registry        Registry
	Rules           []config.Rule
	ConfidenceFloor int
	Control         *Controller
}

func NewService(registry Registry, cfg *config.Config) *Service {
	return &Service{
		Parser: Parser{
			DayFirst:        cfg.Import.DayFirst,
			ReviewThreshold: cfg.Import.ReviewThreshold,
		},
		Registry:        registry,
		Rules:           cfg.Rules,
		ConfidenceFloor: cfg.Match.ConfidenceFloor,
		Control:         &Controller{},
	}
}

func (s *Service) Run(paths []string, options RunOptions) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		if s.Control != nil && !s.Control.waitReady() {
			break
		}
		results = append(results, s.processFile(path, options))
	}
	return results
}

func (s *Service) processFile(path string, options RunOptions) FileResult {
	fileResult := FileResult{Path: path, Status: StatusFailed}

	content, err := ReaderForPath(path).Read(path)
	if err != nil {
		fileResult.Err = err
		return fileResult
	}

	parsed, err := s.Parser.Parse(content)
	if err != nil {
		fileResult.Err = err
		return fileResult
	}
	fileResult.Result = parsed

	identity, score, err := s.routeToMeter(path, parsed, options)
	if err != nil {
		fileResult.Err = err
		return fileResult
	}
	fileResult.MatchScore = score
	if identity == nil {
		// No confident match: the decision to create a meter or drop the
		// file belongs to the caller, not the matcher.
		fileResult.Status = StatusSkipped
		return fileResult
	}
	fileResult.MeterID = identity.ID
	fileResult.MeterName = identity.DisplayName

	if err := s.Registry.UpsertProfiles(identity.ID, parsed.Daily, parsed.Monthly); err != nil {
		fileResult.Err = err
		fileResult.Status = StatusFailed
		return fileResult
	}

	if parsed.NeedsReview {
		fileResult.Status = StatusNeedsReview
	} else {
		fileResult.Status = StatusSuccess
	}
	return fileResult
}

// routeToMeter resolves the target meter: explicit override, then config
// rules by file template, then fuzzy matching against the registry.
func (s *Service) routeToMeter(path string, parsed *Result, options RunOptions) (*meter.Identity, int, error) {
	if options.ForceMeterID > 0 {
		identity, err := s.Registry.FindMeterByID(options.ForceMeterID)
		if err != nil {
			return nil, 0, err
		}
		return identity, 100, nil
	}

	if rule := MatchRuleByTemplate(path, s.Rules); rule.MeterID > 0 {
		identity, err := s.Registry.FindMeterByID(rule.MeterID)
		if err != nil {
			return nil, 0, err
		}
		return identity, 100, nil
	}

	candidate := parsed.MeterName
	if candidate == "" {
		candidate = baseName(path)
	}

	identities, err := s.Registry.ListMeterIdentities(options.SiteFilter)
	if err != nil {
		return nil, 0, err
	}
	identity, score := fuzzy.BestMatch(candidate, identities, s.ConfidenceFloor)
	if identity != nil {
		return identity, score, nil
	}

	if options.CreateMissing {
		creator, ok := s.Registry.(MeterCreator)
		if ok {
			created, createErr := creator.CreateMeter(candidate, options.SiteFilter)
			if createErr != nil {
				return nil, score, createErr
			}
			return &created, score, nil
		}
	}

	return nil, score, nil
}

// MatchRuleByTemplate returns the first rule whose file template matches
// the base name or the full path.
func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	base := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, base)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
