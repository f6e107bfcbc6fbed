package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/asset"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/notify"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/partition"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/template"
)

// Outcome classifies what one routed row produced.
type Outcome string

const (
	// OutcomeCreated means a new student sheet was provisioned.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing sheet was repopulated.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkipped means the row was passed over after a notification.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the row errored; the batch continued without it.
	OutcomeFailed Outcome = "failed"
)

// ItemResult records what happened to one source row.
type ItemResult struct {
	Row     int     `json:"row"`
	Student string  `json:"student,omitempty"`
	Book    string  `json:"book,omitempty"`
	Sheet   string  `json:"sheet,omitempty"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// RunReport collects the per-row results of one routing batch.
type RunReport struct {
	ID       string       `json:"id"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Items    []ItemResult `json:"items"`
}

// Count reports how many items finished with the given outcome.
func (r *RunReport) Count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}

// Failures returns the items that failed, for the post-run summary.
func (r *RunReport) Failures() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Outcome == OutcomeFailed {
			failed = append(failed, item)
		}
	}
	return failed
}

// Router provisions one worksheet per student in the letter-partitioned
// destination workbooks. A row that fails is recorded and the batch moves
// on; only the final book saves can fail a whole run.
type Router struct {
	Map      partition.Map
	Opener   partition.Opener
	Notifier notify.Notifier
	Assets   asset.Source
	// LogoID names the office logo held by Assets. Empty disables the
	// anchor regardless of options.
	LogoID  string
	Layout  ColumnLayout
	Options Options
	Logger  *zap.Logger

	logoFetched bool
	logoBytes   []byte
	logoErr     error
}

// Route processes the selected 1-based source rows. An empty selection means
// every data row. Each partition book is opened at most once, re-sorted, and
// saved after the batch.
func (r *Router) Route(ctx context.Context, rows [][]string, selected []int) (*RunReport, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	report := &RunReport{ID: uuid.NewString(), Started: time.Now()}
	log = log.With(zap.String("run", report.ID))

	if len(selected) == 0 {
		for n := grid.FirstDataRow; n <= len(rows); n++ {
			selected = append(selected, n)
		}
	}

	books := make(map[string]*partition.Book)
	defer func() {
		for _, b := range books {
			b.Close()
		}
	}()

	for _, n := range selected {
		if n < grid.FirstDataRow {
			continue
		}
		if err := ctx.Err(); err != nil {
			report.Finished = time.Now()
			return report, err
		}
		item := r.routeRow(ctx, books, rowAt(rows, n), n)
		report.Items = append(report.Items, item)
		switch item.Outcome {
		case OutcomeFailed:
			log.Warn("row failed", zap.Int("row", item.Row), zap.String("reason", item.Reason))
		case OutcomeSkipped:
			log.Info("row skipped", zap.Int("row", item.Row), zap.String("reason", item.Reason))
		default:
			log.Debug("row routed",
				zap.Int("row", item.Row),
				zap.String("student", item.Student),
				zap.String("book", item.Book),
				zap.String("outcome", string(item.Outcome)),
			)
		}
	}

	var errs []error
	for _, id := range sortedKeys(books) {
		b := books[id]
		if err := b.Reorder(partition.Order(b.Titles())); err != nil {
			errs = append(errs, fmt.Errorf("book %q: %w", b.ID, err))
			continue
		}
		if err := b.Save(); err != nil {
			errs = append(errs, fmt.Errorf("book %q: %w", b.ID, err))
			continue
		}
		log.Info("book saved", zap.String("book", b.ID), zap.Int("sheets", len(b.Titles())))
	}

	report.Finished = time.Now()
	return report, errors.Join(errs...)
}

func (r *Router) routeRow(ctx context.Context, books map[string]*partition.Book, row []string, rowNum int) ItemResult {
	item := ItemResult{Row: rowNum}

	rec, err := ExtractRecord(row, rowNum, r.Layout)
	if err != nil {
		return failItem(item, err)
	}
	name, err := ParseName(rec.FullName)
	if err != nil {
		return failItem(item, err)
	}
	title := SanitizeTitle(name.DisplayKey())
	item.Student = title

	bookID, ok := r.Map.BookFor(name.Last)
	if !ok {
		perr := &NoPartitionError{FullName: rec.FullName, LastName: name.Last}
		r.alert(ctx, rowNum, perr)
		item.Outcome = OutcomeSkipped
		item.Reason = perr.Error()
		return item
	}
	item.Book = bookID

	book, err := r.openBook(books, bookID)
	if err != nil {
		return failItem(item, err)
	}
	actual, created, err := book.Ensure(title)
	if err != nil {
		return failItem(item, err)
	}
	item.Sheet = actual

	logo, err := r.logo()
	if err != nil {
		return failItem(item, fmt.Errorf("logo: %w", err))
	}
	student := template.Student{
		Name:  rec.FullName,
		ID:    rec.ID,
		Email: rec.Email,
		Payor: ClassifyPayor(rec.Program),
	}
	opts := template.Options{Legend: r.Options.ShouldIncludeLegend(), Logo: logo}
	if err := template.Populate(book.File, actual, student, opts); err != nil {
		return failItem(item, fmt.Errorf("populate %q: %w", actual, err))
	}

	if created {
		item.Outcome = OutcomeCreated
	} else {
		item.Outcome = OutcomeUpdated
	}
	return item
}

// alert pushes a NoPartitionError onto the side channel. Delivery failures
// are logged and swallowed; they must not fail the row a second time.
func (r *Router) alert(ctx context.Context, rowNum int, perr *NoPartitionError) {
	n := r.Notifier
	if n == nil {
		n = notify.Discard{}
	}
	subject := fmt.Sprintf("Roster routing: no workbook for %q", perr.LastName)
	body := fmt.Sprintf(
		"Row %d (%s) could not be routed: %v.\n\nAssign the initial to a partition book in garrison.yaml and rerun the route.",
		rowNum, perr.FullName, perr,
	)
	if err := n.Notify(ctx, subject, body); err != nil {
		log := r.Logger
		if log == nil {
			log = zap.NewNop()
		}
		log.Warn("alert delivery failed", zap.Int("row", rowNum), zap.Error(err))
	}
}

func (r *Router) openBook(books map[string]*partition.Book, id string) (*partition.Book, error) {
	if b, ok := books[id]; ok {
		return b, nil
	}
	b, err := r.Opener.Open(id)
	if err != nil {
		return nil, err
	}
	books[id] = b
	return b, nil
}

// logo fetches the office logo once per run. The fetch result, error
// included, is memoized so every row sees the same answer.
func (r *Router) logo() ([]byte, error) {
	if !r.Options.ShouldIncludeLogo() || r.LogoID == "" || r.Assets == nil {
		return nil, nil
	}
	if !r.logoFetched {
		r.logoBytes, r.logoErr = r.Assets.Fetch(r.LogoID)
		r.logoFetched = true
	}
	return r.logoBytes, r.logoErr
}

func failItem(item ItemResult, err error) ItemResult {
	item.Outcome = OutcomeFailed
	item.Reason = err.Error()
	return item
}

func rowAt(rows [][]string, n int) []string {
	if n-1 < len(rows) {
		return rows[n-1]
	}
	return nil
}

func sortedKeys(books map[string]*partition.Book) []string {
	ids := make([]string, 0, len(books))
	for id := range books {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
