// Package sampler periodically reads host counters, derives utilization
// percentages, keeps a fixed-length rolling history per metric and
// publishes immutable snapshots for display layers to read.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/breaker"
	"gitlab.com/tinyland/lab/hostpulse/sampler/host"
)

const (
	// DefaultInterval is the delay between the end of one sample and the
	// start of the next.
	DefaultInterval = time.Second

	// DefaultQueryTimeout bounds a single host query.
	DefaultQueryTimeout = 2 * time.Second

	// DefaultStopTimeout is how long Stop waits for the loop to exit.
	DefaultStopTimeout = 5 * time.Second
)

var (
	// ErrAlreadyRunning is returned by Start while the loop is running.
	ErrAlreadyRunning = errors.New("sampler: already running")

	// ErrNotRunning is returned by Shutdown when no loop is running.
	ErrNotRunning = errors.New("sampler: not running")

	// ErrTimeout marks a host query that exceeded the query timeout.
	ErrTimeout = errors.New("sampler: query timed out")
)

// Probe names, used for breakers, logging and ProbeFailure.
const (
	probeCPUBusy   = "cpu_busy"
	probeCPUTimes  = "cpu_times"
	probeFrequency = "frequency"
	probeCores     = "cores"
	probeMemory    = "memory"
	probeSwap      = "swap"
	probeDisk      = "disk"
	probeProcess   = "process"
	probeLoad      = "load"
	probeInfo      = "info"
)

var allProbes = []string{
	probeCPUBusy, probeCPUTimes, probeFrequency, probeCores, probeMemory,
	probeSwap, probeDisk, probeProcess, probeLoad, probeInfo,
}

// Config controls a Sampler.
type Config struct {
	// Interval is the default loop delay used when Start is given zero.
	Interval time.Duration

	// HistoryCapacity is the number of points kept per series.
	HistoryCapacity int

	// DiskPath selects the filesystem whose usage is sampled.
	DiskPath string

	// QueryTimeout bounds each host query. Expiry is a transient failure.
	QueryTimeout time.Duration

	// Breaker configures the per-probe circuit breakers.
	Breaker breaker.Config

	// Logger receives probe failures and sample summaries. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default sampler configuration.
func DefaultConfig() Config {
	return Config{
		Interval:        DefaultInterval,
		HistoryCapacity: DefaultHistoryCapacity,
		DiskPath:        host.DefaultDiskPath(),
		QueryTimeout:    DefaultQueryTimeout,
		Breaker:         breaker.DefaultConfig(),
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("sampler: interval must be positive, got %s", c.Interval)
	}
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("sampler: history capacity must be at least 1, got %d", c.HistoryCapacity)
	}
	if c.DiskPath == "" {
		return errors.New("sampler: disk path must not be empty")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("sampler: query timeout must be positive, got %s", c.QueryTimeout)
	}
	if err := c.Breaker.Validate(); err != nil {
		return fmt.Errorf("sampler: %w", err)
	}
	return nil
}

// errTracker deduplicates repeated identical errors per probe.
type errTracker struct {
	lastMsg    string
	lastTime   time.Time
	suppressed int64
}

// Sampler owns the rolling histories and the published snapshot. Sample
// and the background loop serialize on an internal mutex; Latest never
// blocks.
type Sampler struct {
	reader host.Reader
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	// Guarded by mu.
	mu          sync.Mutex
	histories   [numSeries]*history
	prevTicks   host.CPUTimes
	havePrev    bool
	last        RawSample
	memPercent  float64
	seq         uint64
	unsupported map[string]bool
	breakers    map[string]*breaker.Breaker
	errTrackers map[string]*errTracker
	info        host.Info
	haveInfo    bool

	latest atomic.Pointer[Snapshot]

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a sampler reading from r. The configuration is validated;
// a zero Breaker config is replaced by breaker.DefaultConfig().
func New(r host.Reader, cfg Config) (*Sampler, error) {
	if r == nil {
		return nil, errors.New("sampler: nil host reader")
	}
	if cfg.Breaker == (breaker.Config{}) {
		cfg.Breaker = breaker.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Sampler{
		reader:      r,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
		unsupported: make(map[string]bool),
		breakers:    make(map[string]*breaker.Breaker, len(allProbes)),
		errTrackers: make(map[string]*errTracker),
	}
	for i := range s.histories {
		s.histories[i] = newHistory(cfg.HistoryCapacity)
	}
	bcfg := cfg.Breaker
	bcfg.Logger = logger
	for _, name := range allProbes {
		s.breakers[name] = breaker.New(name, bcfg)
	}

	empty := &Snapshot{}
	for i := range empty.supported {
		empty.supported[i] = true
	}
	s.latest.Store(empty)
	return s, nil
}

// Latest returns the most recently published snapshot. It returns the same
// pointer until the next sample is published.
func (s *Sampler) Latest() *Snapshot {
	return s.latest.Load()
}

// BreakerStats returns the circuit breaker statistics of every probe.
func (s *Sampler) BreakerStats() map[string]breaker.Stats {
	out := make(map[string]breaker.Stats, len(s.breakers))
	for name, b := range s.breakers {
		out[name] = b.Stats()
	}
	return out
}

// ResetOpenProbes closes every open breaker so its probe runs again on the
// next sample. It returns the names of the probes that were reset.
func (s *Sampler) ResetOpenProbes() []string {
	var reset []string
	for _, name := range allProbes {
		b := s.breakers[name]
		if b.State() != breaker.StateOpen {
			continue
		}
		b.Reset()
		reset = append(reset, b.Name())
	}
	return reset
}

// Sample reads the host once, appends to every supported history and
// publishes a new snapshot. Transient read failures never surface as
// errors: the last-known-good value is carried forward and the snapshot is
// marked Partial.
func (s *Sampler) Sample(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.sampleLocked(ctx)
	return snap
}

// tick accumulates the outcome of one sample.
type tick struct {
	cur       RawSample
	failures  []ProbeFailure
	succeeded int
	errs      []error
}

// fail records a transient failure of the probe filling group f and
// carries the previous value of f forward when there is one.
func (s *Sampler) fail(t *tick, probe string, f Field, err error) {
	t.failures = append(t.failures, ProbeFailure{Probe: probe, Err: err.Error()})
	t.errs = append(t.errs, fmt.Errorf("%s: %w", probe, err))
	if f != 0 && s.last.Present.Has(f) {
		carryForward(&t.cur, &s.last, f)
		t.cur.Present |= f
		t.cur.Carried |= f
	}
}

// sampleLocked takes one sample. The returned error joins every probe
// failure and is non-nil only when no probe succeeded.
func (s *Sampler) sampleLocked(ctx context.Context) (*Snapshot, error) {
	// Reads complete even if the caller is cancelled mid-sample.
	ctx = context.WithoutCancel(ctx)

	t := &tick{cur: RawSample{At: s.now(), DiskPath: s.cfg.DiskPath}}

	s.sampleCPU(ctx, t)

	if mhz, err := probe(s, ctx, probeFrequency, s.reader.CPUFrequency); s.record(t, probeFrequency, FieldFrequency, err) {
		t.cur.CPUFrequencyMHz = mhz
	}
	if c, err := probe(s, ctx, probeCores, s.reader.CPUCounts); s.record(t, probeCores, FieldCores, err) {
		t.cur.PhysicalCores = c.Physical
		t.cur.LogicalCores = c.Logical
	}

	if m, err := probe(s, ctx, probeMemory, s.reader.Memory); s.record(t, probeMemory, FieldMemory, err) {
		t.cur.TotalMemory = m.Total
		t.cur.UsedMemory = m.Used
		t.cur.AvailableMemory = m.Available
		t.cur.CommitCharge = m.CommitCharge
		t.cur.CommitLimit = m.CommitLimit
		s.memPercent = memoryPercent(m)
	}

	if sw, err := probe(s, ctx, probeSwap, s.reader.Swap); s.record(t, probeSwap, FieldSwap, err) {
		t.cur.SwapTotal = sw.Total
		t.cur.SwapUsed = sw.Used
		t.cur.SwapFree = sw.Free
	}

	diskPath := s.cfg.DiskPath
	readDisk := func(ctx context.Context) (host.Disk, error) {
		return s.reader.Disk(ctx, diskPath)
	}
	if d, err := probe(s, ctx, probeDisk, readDisk); s.record(t, probeDisk, FieldDisk, err) {
		t.cur.DiskTotal = d.Total
		t.cur.DiskUsed = d.Used
		t.cur.DiskFree = d.Free
	}

	if p, err := probe(s, ctx, probeProcess, s.reader.Process); s.record(t, probeProcess, FieldProcess, err) {
		t.cur.ProcessPrivate = p.PrivateBytes
		t.cur.ProcessPeak = p.PeakBytes
		t.cur.HasProcessPeak = p.HasPeak
		t.cur.PageFaults = p.PageFaults
		t.cur.HasPageFaults = p.HasPageFaults
	}

	if l, err := probe(s, ctx, probeLoad, s.reader.LoadAverage); s.record(t, probeLoad, FieldLoad, err) {
		t.cur.Load1 = l.Load1
		t.cur.Load5 = l.Load5
		t.cur.Load15 = l.Load15
	}

	if !s.haveInfo {
		if info, err := probe(s, ctx, probeInfo, s.reader.Info); s.record(t, probeInfo, 0, err) {
			s.info = info
			s.haveInfo = true
		}
	}

	snap := s.publish(t)

	if t.succeeded == 0 && len(t.errs) > 0 {
		return snap, errors.Join(t.errs...)
	}
	return snap, nil
}

// sampleCPU fills the CPU group, preferring the native busy counter and
// falling back to tick deltas where the platform has none.
func (s *Sampler) sampleCPU(ctx context.Context, t *tick) {
	if !s.unsupported[probeCPUBusy] {
		pct, err := probe(s, ctx, probeCPUBusy, s.reader.CPUBusyPercent)
		if s.record(t, probeCPUBusy, FieldCPU, err) {
			t.cur.CPUPercent = clampPercent(pct)
			return
		}
		if !errors.Is(err, host.ErrUnsupported) {
			return
		}
	}

	ticks, err := probe(s, ctx, probeCPUTimes, s.reader.CPUTimes)
	if !s.record(t, probeCPUTimes, FieldCPU, err) {
		return
	}
	if s.havePrev {
		t.cur.CPUPercent = CPUPercent(s.prevTicks, ticks)
	}
	s.prevTicks = ticks
	s.havePrev = true
}

// record classifies the outcome of a probe. It returns true on success.
// Unsupported counters are remembered and never queried again; anything
// else is a transient failure that carries group f forward.
func (s *Sampler) record(t *tick, name string, f Field, err error) bool {
	switch {
	case err == nil:
		t.succeeded++
		if f != 0 {
			t.cur.Present |= f
		}
		s.clearError(name)
		return true
	case errors.Is(err, host.ErrUnsupported):
		if !s.unsupported[name] {
			s.unsupported[name] = true
			s.logger.Info("counter not supported on this platform", "probe", name)
		}
		return false
	default:
		s.fail(t, name, f, err)
		if !errors.Is(err, breaker.ErrOpen) {
			s.logProbeError(name, err)
		}
		return false
	}
}

// probe runs one host query through the probe's breaker with the query
// timeout applied.
func probe[T any](s *Sampler, ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.unsupported[name] {
		return zero, host.ErrUnsupported
	}
	var (
		v    T
		qerr error
	)
	err := s.breakers[name].Call(func() error {
		v, qerr = query(ctx, s.cfg.QueryTimeout, fn)
		if errors.Is(qerr, host.ErrUnsupported) {
			return nil
		}
		return qerr
	})
	if errors.Is(err, breaker.ErrOpen) {
		return zero, err
	}
	return v, qerr
}

// query runs fn with a deadline. A query that does not return in time is
// abandoned; its goroutine finishes on its own and the result is dropped.
func query[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ErrTimeout
	}
}

// seriesSupported reports whether series can ever be populated.
func (s *Sampler) seriesSupported(series Series) bool {
	switch series {
	case SeriesCPU:
		return !(s.unsupported[probeCPUBusy] && s.unsupported[probeCPUTimes])
	case SeriesMemory:
		return !s.unsupported[probeMemory]
	case SeriesVirtualMemory:
		return !s.unsupported[probeMemory] && !s.unsupported[probeSwap]
	case SeriesDisk:
		return !s.unsupported[probeDisk]
	}
	return false
}

// publish appends the tick to the histories, builds the snapshot and
// stores it.
func (s *Sampler) publish(t *tick) *Snapshot {
	cur := t.cur
	s.seq++

	// memPercent holds the last good reading, so a carried memory group
	// keeps its OS-reported percent.
	var memPercent float64
	if cur.Present.Has(FieldMemory) {
		memPercent = s.memPercent
	}
	vmPercent := virtualMemoryPercent(
		host.Memory{Total: cur.TotalMemory, Used: cur.UsedMemory},
		host.Swap{Total: cur.SwapTotal, Used: cur.SwapUsed},
	)

	snap := &Snapshot{
		Seq:      s.seq,
		Sample:   cur,
		Host:     s.info,
		Partial:  len(t.failures) > 0,
		Failures: t.failures,
	}

	values := [numSeries]struct {
		v  float64
		ok bool
	}{
		SeriesCPU:           {cur.CPUPercent, cur.Present.Has(FieldCPU)},
		SeriesMemory:        {memPercent, cur.Present.Has(FieldMemory)},
		SeriesVirtualMemory: {vmPercent, cur.Present.Has(FieldMemory | FieldSwap)},
		SeriesDisk:          {percentOf(cur.DiskUsed, cur.DiskTotal), cur.Present.Has(FieldDisk)},
	}

	for _, series := range AllSeries() {
		supported := s.seriesSupported(series)
		snap.supported[series] = supported
		if supported {
			p := Point{At: cur.At, Missing: !values[series].ok}
			if values[series].ok {
				p.Value = values[series].v
			}
			s.histories[series].push(p)
		}
		snap.history[series] = s.histories[series].points()
	}

	snap.CPUPercent = values[SeriesCPU].v
	snap.MemoryPercent = values[SeriesMemory].v
	snap.VirtualMemoryPercent = values[SeriesVirtualMemory].v
	snap.DiskPercent = values[SeriesDisk].v

	for _, name := range allProbes {
		if s.breakers[name].State() == breaker.StateOpen {
			snap.OpenProbes = append(snap.OpenProbes, name)
		}
	}

	s.last = mergeLast(s.last, cur)
	s.latest.Store(snap)

	s.logger.Debug("sample published",
		"seq", snap.Seq,
		"cpu", snap.CPUPercent,
		"memory", snap.MemoryPercent,
		"virtual_memory", snap.VirtualMemoryPercent,
		"disk", snap.DiskPercent,
		"partial", snap.Partial,
	)
	return snap
}

// mergeLast folds the groups present in cur into the last-known-good
// sample.
func mergeLast(last, cur RawSample) RawSample {
	for _, fn := range fieldNames {
		if cur.Present.Has(fn.f) {
			carryForward(&last, &cur, fn.f)
			last.Present |= fn.f
		}
	}
	last.At = cur.At
	return last
}

// carryForward copies the fields of group f from src to dst.
func carryForward(dst, src *RawSample, f Field) {
	switch f {
	case FieldCPU:
		dst.CPUPercent = src.CPUPercent
	case FieldFrequency:
		dst.CPUFrequencyMHz = src.CPUFrequencyMHz
	case FieldCores:
		dst.PhysicalCores = src.PhysicalCores
		dst.LogicalCores = src.LogicalCores
	case FieldMemory:
		dst.TotalMemory = src.TotalMemory
		dst.UsedMemory = src.UsedMemory
		dst.AvailableMemory = src.AvailableMemory
		dst.CommitCharge = src.CommitCharge
		dst.CommitLimit = src.CommitLimit
	case FieldSwap:
		dst.SwapTotal = src.SwapTotal
		dst.SwapUsed = src.SwapUsed
		dst.SwapFree = src.SwapFree
	case FieldDisk:
		dst.DiskTotal = src.DiskTotal
		dst.DiskUsed = src.DiskUsed
		dst.DiskFree = src.DiskFree
	case FieldProcess:
		dst.ProcessPrivate = src.ProcessPrivate
		dst.ProcessPeak = src.ProcessPeak
		dst.HasProcessPeak = src.HasProcessPeak
		dst.PageFaults = src.PageFaults
		dst.HasPageFaults = src.HasPageFaults
	case FieldLoad:
		dst.Load1 = src.Load1
		dst.Load5 = src.Load5
		dst.Load15 = src.Load15
	}
}

// logProbeError deduplicates repeated identical errors from the same
// probe. A repeat within an hour is suppressed, with a summary every 100
// suppressions.
func (s *Sampler) logProbeError(name string, err error) {
	msg := err.Error()
	tracker := s.errTrackers[name]
	if tracker == nil {
		tracker = &errTracker{}
		s.errTrackers[name] = tracker
	}
	now := s.now()
	if msg == tracker.lastMsg && now.Sub(tracker.lastTime) < time.Hour {
		tracker.suppressed++
		if tracker.suppressed%100 == 0 {
			s.logger.Warn("probe failing repeatedly", "probe", name, "repeated", tracker.suppressed, "err", err)
		}
		return
	}
	if tracker.suppressed > 0 {
		s.logger.Warn("previous probe error repeated", "probe", name, "repeated", tracker.suppressed)
	}
	s.logger.Warn("probe failed", "probe", name, "err", err)
	tracker.lastMsg = msg
	tracker.lastTime = now
	tracker.suppressed = 0
}

// clearError resets the dedup state once a probe recovers.
func (s *Sampler) clearError(name string) {
	tracker := s.errTrackers[name]
	if tracker == nil || tracker.lastMsg == "" {
		return
	}
	if tracker.suppressed > 0 {
		s.logger.Warn("previous probe error repeated", "probe", name, "repeated", tracker.suppressed)
	}
	s.logger.Info("probe recovered", "probe", name)
	delete(s.errTrackers, name)
}

// Start takes a synchronous probe sample and then samples in the
// background, waiting interval between the end of one sample and the start
// of the next. A non-positive interval uses the configured default. Start
// fails when every probe of the first sample fails, and returns
// ErrAlreadyRunning while a loop is active. A stopped sampler may be
// started again; history continues.
func (s *Sampler) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.cfg.Interval
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		select {
		case <-s.done:
			// The loop exited because its context was cancelled.
			s.running = false
		default:
			return ErrAlreadyRunning
		}
	}

	s.mu.Lock()
	_, err := s.sampleLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("sampler: host counters unavailable: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	go s.loop(loopCtx, interval, s.done)

	s.logger.Info("sampler started", "interval", interval, "capacity", s.cfg.HistoryCapacity)
	return nil
}

func (s *Sampler) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		s.Sample(ctx)
		timer.Reset(interval)
	}
}

// Running reports whether the background loop is active.
func (s *Sampler) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Shutdown stops the loop and waits for it to exit or for ctx to expire.
// An in-flight sample completes; no new one starts.
func (s *Sampler) Shutdown(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return ErrNotRunning
	}
	s.cancel()

	select {
	case <-s.done:
		s.running = false
		s.logger.Info("sampler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sampler: stop: %w", ctx.Err())
	}
}

// Stop stops the loop, waiting up to DefaultStopTimeout for it to exit.
// Calling Stop on a stopped sampler is a no-op.
func (s *Sampler) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ErrNotRunning) {
		s.logger.Warn("sampler stop timed out", "timeout", DefaultStopTimeout)
	}
}
