package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Loader merges several datasets into one training and one evaluation list.
type Loader struct {
	registry *Registry
	splitter Splitter
	shuffle  func([]Record)
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSplitter sets the splitter used for datasets without a validation manifest.
func WithSplitter(s Splitter) LoaderOption {
	return func(l *Loader) {
		if s != nil {
			l.splitter = s
		}
	}
}

// WithSeed makes the shuffle deterministic.
func WithSeed(seed uint64) LoaderOption {
	return func(l *Loader) {
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		l.shuffle = func(records []Record) {
			rng.Shuffle(len(records), func(i, j int) {
				records[i], records[j] = records[j], records[i]
			})
		}
	}
}

// WithShuffle replaces the shuffle applied to every parser's output.
func WithShuffle(fn func([]Record)) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.shuffle = fn
		}
	}
}

// NewLoader creates a Loader that resolves parsers from registry.
// Without options it uses the default HeadSplitter and a randomly seeded shuffle.
func NewLoader(registry *Registry, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{
		registry: registry,
		splitter: NewHeadSplitter(),
		shuffle:  shuffleRecords,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func shuffleRecords(records []Record) {
	rand.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// Load parses every descriptor in order and returns the concatenated
// training and evaluation lists. Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context, descriptors []Descriptor) (train, eval []Record, err error) {
	for i, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("load cancelled: %w", err)
		}

		dsTrain, dsEval, err := l.loadOne(ctx, d)
		if err != nil {
			return nil, nil, fmt.Errorf("dataset %d (%s): %w", i, d.Name, err)
		}

		l.logger.Info("dataset loaded",
			slog.String("name", d.Name),
			slog.String("path", d.Path),
			slog.Int("train", len(dsTrain)),
			slog.Int("eval", len(dsEval)),
			slog.Bool("split", !d.HasValidation()),
		)

		train = append(train, dsTrain...)
		eval = append(eval, dsEval...)
	}
	return train, eval, nil
}

func (l *Loader) loadOne(ctx context.Context, d Descriptor) (train, eval []Record, err error) {
	parser, err := l.registry.Resolve(d.Name)
	if err != nil {
		return nil, nil, err
	}

	train, err = l.parse(ctx, parser, d.Path, d.MetaFileTrain)
	if err != nil {
		return nil, nil, fmt.Errorf("train manifest: %w", err)
	}

	if !d.HasValidation() {
		eval, train = l.splitter.Split(train)
		return train, eval, nil
	}

	eval, err = l.parse(ctx, parser, d.Path, d.MetaFileVal)
	if err != nil {
		return nil, nil, fmt.Errorf("validation manifest: %w", err)
	}
	return train, eval, nil
}

func (l *Loader) parse(ctx context.Context, p Parser, root, manifest string) ([]Record, error) {
	records, err := p.Parse(ctx, root, manifest)
	if err != nil {
		return nil, err
	}
	l.shuffle(records)
	return records, nil
}
