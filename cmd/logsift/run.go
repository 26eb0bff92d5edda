package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

// maxLineBytes bounds a single JSON record.
const maxLineBytes = 1 << 20

type stats struct {
	read, kept, dropped, skipped int
}

func (a *app) runFilter(cmd *cobra.Command, _ []string) error {
	logger := a.logger(cmd)

	pred, err := a.buildPredicate(cmd, logger)
	if err != nil {
		return err
	}
	logger.Debug("filter ready", "filter", pred.String())

	in := cmd.InOrStdin()
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := bufio.NewWriter(cmd.OutOrStdout())
	nodes := []core.Node{filter.NewStage(pred), jsonSink(out)}

	st, err := runPipeline(ctx, in, nodes, logger)
	// Records kept before a failure are still written.
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("flush output: %w", ferr)
	}
	logger.Info("done", "read", st.read, "kept", st.kept, "dropped", st.dropped, "skipped", st.skipped)
	return err
}

// jsonSink writes every record it sees as a JSON line and flushes w at
// the end of the stream.
func jsonSink(w *bufio.Writer) core.Node {
	enc := json.NewEncoder(w)
	return core.NodeFunc(func(_ context.Context, m core.Message) (core.Message, error) {
		switch m := m.(type) {
		case core.RecordMessage:
			if err := enc.Encode(m.Record); err != nil {
				return nil, fmt.Errorf("write record: %w", err)
			}
		case core.Done:
			if err := w.Flush(); err != nil {
				return nil, fmt.Errorf("flush output: %w", err)
			}
		}
		return m, nil
	})
}

// runPipeline decodes records from r and passes each through nodes in
// order. A node returning core.Drop ends that record's trip. core.Done is
// sent through every node once input is exhausted.
func runPipeline(ctx context.Context, r io.Reader, nodes []core.Node, logger *slog.Logger) (stats, error) {
	var st stats

	err := decodeRecords(r, logger, func(rec *core.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		st.read++
		m, err := forward(ctx, nodes, core.NewRecordMessage(rec))
		if err != nil {
			return err
		}
		if _, ok := m.(core.Drop); ok {
			st.dropped++
		} else {
			st.kept++
		}
		return nil
	}, &st.skipped)
	if err != nil {
		return st, err
	}

	_, err = forward(ctx, nodes, core.Done{})
	return st, err
}

func forward(ctx context.Context, nodes []core.Node, m core.Message) (core.Message, error) {
	for _, n := range nodes {
		var err error
		if m, err = n.Process(ctx, m); err != nil {
			return nil, err
		}
		if _, ok := m.(core.Drop); ok {
			return m, nil
		}
	}
	return m, nil
}

// decodeRecords calls fn for each JSON record in r. Blank lines are
// ignored; lines that are not valid records are logged and counted in
// skipped.
func decodeRecords(r io.Reader, logger *slog.Logger, fn func(*core.Record) error, skipped *int) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		rec := &core.Record{}
		if err := json.Unmarshal(line, rec); err != nil {
			logger.Warn("skipping line", "line", lineNo, "err", err)
			*skipped++
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// readRecords loads every record from path.
func readRecords(path string, logger *slog.Logger) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var records []*core.Record
	var skipped int
	err = decodeRecords(f, logger, func(r *core.Record) error {
		records = append(records, r)
		return nil
	}, &skipped)
	return records, err
}
