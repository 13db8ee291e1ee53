package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"itrfiling/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories.

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeFilingRepo struct {
	rows map[uuid.UUID]model.Filing
}

func newFakeFilingRepo() *fakeFilingRepo {
	return &fakeFilingRepo{rows: map[uuid.UUID]model.Filing{}}
}

func (r *fakeFilingRepo) Create(_ context.Context, f *model.Filing) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	r.rows[f.ID] = *f
	return nil
}

func (r *fakeFilingRepo) Update(_ context.Context, f *model.Filing) error {
	r.rows[f.ID] = *f
	return nil
}

func (r *fakeFilingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Filing, error) {
	f, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r *fakeFilingRepo) List(_ context.Context, page, limit int) ([]model.Filing, int64, error) {
	all := make([]model.Filing, 0, len(r.rows))
	for _, f := range r.rows {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := min(start+limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *fakeFilingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type fakeIncomeRepo struct {
	rows []model.IncomeRecord
}

func (r *fakeIncomeRepo) Create(_ context.Context, rec *model.IncomeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	r.rows = append(r.rows, *rec)
	return nil
}

func (r *fakeIncomeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	for _, rec := range r.rows {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIncomeRepo) ListActive(_ context.Context, filingID uuid.UUID) ([]model.IncomeRecord, error) {
	var res []model.IncomeRecord
	for _, rec := range r.rows {
		if rec.FilingID == filingID && !rec.Superseded {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (r *fakeIncomeRepo) ListHistory(_ context.Context, lineageID uuid.UUID) ([]model.IncomeRecord, error) {
	var res []model.IncomeRecord
	for _, rec := range r.rows {
		if rec.LineageID == lineageID {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Version < res[j].Version })
	return res, nil
}

func (r *fakeIncomeRepo) MarkSuperseded(_ context.Context, id uuid.UUID) error {
	for i := range r.rows {
		if r.rows[i].ID == id && !r.rows[i].Superseded {
			r.rows[i].Superseded = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeIncomeRepo) DeleteLineage(_ context.Context, lineageID uuid.UUID) error {
	kept := r.rows[:0]
	for _, rec := range r.rows {
		if rec.LineageID != lineageID {
			kept = append(kept, rec)
		}
	}
	r.rows = kept
	return nil
}

type fakeDeductionRepo struct {
	rows []model.DeductionClaim
}

func (r *fakeDeductionRepo) Create(_ context.Context, c *model.DeductionClaim) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.rows = append(r.rows, *c)
	return nil
}

func (r *fakeDeductionRepo) Update(_ context.Context, c *model.DeductionClaim) error {
	for i := range r.rows {
		if r.rows[i].ID == c.ID {
			r.rows[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeDeductionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DeductionClaim, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDeductionRepo) ListByFiling(_ context.Context, filingID uuid.UUID) ([]model.DeductionClaim, error) {
	var res []model.DeductionClaim
	for _, c := range r.rows {
		if c.FilingID == filingID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (r *fakeDeductionRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCapitalGainRepo struct {
	rows []model.CapitalGainTransaction
}

func (r *fakeCapitalGainRepo) Create(_ context.Context, t *model.CapitalGainTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.rows = append(r.rows, *t)
	return nil
}

func (r *fakeCapitalGainRepo) Update(_ context.Context, t *model.CapitalGainTransaction) error {
	for i := range r.rows {
		if r.rows[i].ID == t.ID {
			r.rows[i] = *t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCapitalGainRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CapitalGainTransaction, error) {
	for _, t := range r.rows {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCapitalGainRepo) ListByFiling(_ context.Context, filingID uuid.UUID) ([]model.CapitalGainTransaction, error) {
	var res []model.CapitalGainTransaction
	for _, t := range r.rows {
		if t.FilingID == filingID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (r *fakeCapitalGainRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, e *model.AuditLog) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, filingID *uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	var res []model.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filingID == nil || (e.FilingID != nil && *e.FilingID == *filingID) {
			res = append(res, e)
		}
	}
	total := int64(len(res))
	start := min((page-1)*limit, len(res))
	end := min(start+limit, len(res))
	return res[start:end], total, nil
}

func (r *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads map[string][][]byte
}

func (p *fakePublisher) Publish(filingID string, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.payloads == nil {
		p.payloads = map[string][][]byte{}
	}
	p.payloads[filingID] = append(p.payloads[filingID], payload)
}

func (p *fakePublisher) last(filingID string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	all := p.payloads[filingID]
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

type fakeNotifier struct {
	changed []uuid.UUID
}

func (n *fakeNotifier) FilingChanged(_ context.Context, filingID uuid.UUID) {
	n.changed = append(n.changed, filingID)
}
