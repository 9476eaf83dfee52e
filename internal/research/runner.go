package research

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/llm"
	"leadgen-engine/internal/normalize"
	"leadgen-engine/internal/search"
	"leadgen-engine/internal/store"
)

// Quality gate. A company is only persisted when all three hold.
const (
	gateMinScore      = 65
	gateFit           = "high"
	gateMinEmailScore = 60
)

// ProfileClient is the model surface the runner needs: profile
// extraction, query generation and candidate scoring.
type ProfileClient interface {
	ExtractICP(ctx context.Context, productDescription string) (domain.ICP, error)
	GenerateQueries(ctx context.Context, icp domain.ICP, p llm.Progress) ([]string, error)
	ScoreCompany(ctx context.Context, co domain.Company, icp domain.ICP) (domain.Qualification, error)
}

// EmailValidator annotates candidate addresses with confidence tiers.
type EmailValidator interface {
	Validate(ctx context.Context, emails []string, scraped bool) []domain.EmailDetail
}

// LeadStore persists qualified leads. SaveLead reports whether a new
// row was written; false means the domain already existed.
type LeadStore interface {
	SaveLead(l domain.Lead) (added bool, err error)
}

// DBStore is the sqlite-backed LeadStore.
type DBStore struct {
	DB *sql.DB
}

func (s DBStore) SaveLead(l domain.Lead) (bool, error) {
	added, err := store.InsertLeadIgnore(s.DB, l)
	if err != nil {
		return false, err
	}
	if added && l.ProductID != "" {
		if err := store.BumpProductLeadCount(s.DB, l.ProductID); err != nil {
			log.Printf("level=warn msg=\"lead count bump failed\" product_id=%s err=%v", l.ProductID, err)
		}
	}
	return added, nil
}

// Params starts one research run.
type Params struct {
	RunID              string
	ProductDescription string
	ProductID          string
	ProductName        string
	TargetCount        int
	MaxIterations      int
}

// Summary is what a finished run amounts to.
type Summary struct {
	RunID      string        `json:"run_id"`
	SavedCount int           `json:"saved_count"`
	Iterations int           `json:"iterations"`
	Leads      []domain.Lead `json:"leads"`
	Err        string        `json:"error,omitempty"`
}

// Runner drives the search -> enrich -> score -> save loop for one run
// at a time. It owns no cross-run state; the Manager does.
type Runner struct {
	LLM             ProfileClient
	Search          search.Provider
	Enrich          enrich.Enricher
	Checker         EmailValidator
	Store           LeadStore
	Hub             *events.Hub
	ResultsPerQuery int

	// Emit receives every step for the per-run stream. Optional.
	Emit func(Step)
}

// Run executes the loop until the target is met, the iteration budget
// runs out, or the context is cancelled. It always emits exactly one
// terminal event.
func (r *Runner) Run(ctx context.Context, p Params) Summary {
	if p.TargetCount <= 0 {
		p.TargetCount = 30
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = 5
	}

	st := &runState{}
	sum := Summary{RunID: p.RunID, Leads: []domain.Lead{}}

	r.emit(p.RunID, Step{Type: TypeStart, Message: "research run started", Data: map[string]any{
		"target_count":   p.TargetCount,
		"max_iterations": p.MaxIterations,
		"product_name":   p.ProductName,
	}})

	var icp domain.ICP
	haveICP := false

	for st.iteration = 1; st.iteration <= p.MaxIterations; st.iteration++ {
		if err := ctx.Err(); err != nil {
			return r.finishCancelled(p.RunID, sum, st)
		}
		if st.saved >= p.TargetCount {
			break
		}

		if !haveICP {
			r.emit(p.RunID, Step{Type: TypeThought, Message: "extracting ideal customer profile from product description"})
			got, err := r.LLM.ExtractICP(ctx, p.ProductDescription)
			if err != nil {
				if ctx.Err() != nil {
					return r.finishCancelled(p.RunID, sum, st)
				}
				r.emit(p.RunID, Step{Type: TypeError, Message: "profile extraction failed: " + err.Error()})
				st.note("profile extraction failed")
				continue
			}
			icp = got
			haveICP = true
			r.emit(p.RunID, Step{Type: TypeThought, Message: "profile ready", Data: map[string]any{"icp": icp}})
		}

		queries, err := r.LLM.GenerateQueries(ctx, icp, llm.Progress{
			Iteration:   st.iteration,
			SavedCount:  st.saved,
			TargetCount: p.TargetCount,
			RecentNotes: st.notes,
		})
		if err != nil {
			if ctx.Err() != nil {
				return r.finishCancelled(p.RunID, sum, st)
			}
			r.emit(p.RunID, Step{Type: TypeError, Message: "query generation failed: " + err.Error()})
			st.note("query generation failed")
			continue
		}
		r.emit(p.RunID, Step{Type: TypeThought, Message: fmt.Sprintf("iteration %d: trying %d search queries", st.iteration, len(queries))})

		for _, q := range queries {
			if ctx.Err() != nil {
				return r.finishCancelled(p.RunID, sum, st)
			}
			if st.saved >= p.TargetCount {
				break
			}
			if err := r.runQuery(ctx, p, q, icp, st, &sum); err != nil {
				// Storage failure; the error event is already out.
				sum.SavedCount = st.saved
				sum.Iterations = st.iteration
				sum.Err = err.Error()
				return sum
			}
		}
	}

	if ctx.Err() != nil {
		return r.finishCancelled(p.RunID, sum, st)
	}

	sum.SavedCount = st.saved
	sum.Iterations = st.iteration - 1
	if sum.Iterations > p.MaxIterations {
		sum.Iterations = p.MaxIterations
	}
	r.emit(p.RunID, Step{Type: TypeComplete, Tool: ToolComplete,
		Message: fmt.Sprintf("run complete: %d lead(s) saved", st.saved),
		Data:    map[string]any{"total": st.saved, "iterations": sum.Iterations}})
	return sum
}

// runQuery handles one search query: every candidate failure is an
// observation and the loop moves on; only a storage failure is fatal
// and comes back as an error.
func (r *Runner) runQuery(ctx context.Context, p Params, query string, icp domain.ICP, st *runState, sum *Summary) error {
	r.emit(p.RunID, Step{Type: TypeAction, Tool: ToolSearch, Message: "searching: " + query})

	max := r.ResultsPerQuery
	if max <= 0 {
		max = 10
	}
	results, err := r.Search.Search(ctx, query, max)
	if err != nil {
		r.emit(p.RunID, Step{Type: TypeObservation, Message: fmt.Sprintf("search failed (%s): %v", r.Search.Name(), err)})
		st.note("search failed: " + query)
		return nil
	}

	candidates := normalize.Candidates(results)
	r.emit(p.RunID, Step{Type: TypeObservation,
		Message: fmt.Sprintf("%d result(s), %d candidate domain(s)", len(results), len(candidates))})
	st.note(fmt.Sprintf("query %q yielded %d candidates", query, len(candidates)))

	for _, d := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		if st.saved >= p.TargetCount {
			return nil
		}
		if err := r.processCandidate(ctx, p, d, icp, st, sum); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) processCandidate(ctx context.Context, p Params, companyDomain string, icp domain.ICP, st *runState, sum *Summary) error {
	r.emit(p.RunID, Step{Type: TypeAction, Tool: ToolEnrich, Message: "enriching " + companyDomain})

	co, err := r.Enrich.Enrich(ctx, companyDomain)
	if err != nil {
		r.emit(p.RunID, Step{Type: TypeObservation, Message: fmt.Sprintf("enrich failed for %s: %v", companyDomain, err)})
		return nil
	}

	co.EmailDetails = r.Checker.Validate(ctx, co.Emails, co.EmailSource == "scraped")

	r.emit(p.RunID, Step{Type: TypeAction, Tool: ToolScore, Message: "scoring " + co.Name})
	qual, err := r.LLM.ScoreCompany(ctx, co, icp)
	if err != nil {
		r.emit(p.RunID, Step{Type: TypeObservation, Message: fmt.Sprintf("scoring failed for %s: %v", companyDomain, err)})
		return nil
	}
	qual.QualifiedAt = time.Now().UTC()

	if reason, ok := passesGate(co, qual); !ok {
		r.emit(p.RunID, Step{Type: TypeObservation,
			Message: fmt.Sprintf("skipped %s: %s", companyDomain, reason),
			Data:    map[string]any{"score": qual.Score, "fit": qual.Fit}})
		return nil
	}

	r.emit(p.RunID, Step{Type: TypeAction, Tool: ToolSave, Message: "saving lead " + companyDomain})
	lead := domain.Lead{
		Domain:        co.Domain,
		Name:          co.Name,
		Description:   co.Description,
		URL:           co.URL,
		Phone:         co.Phone,
		LinkedInURL:   co.LinkedInURL,
		Emails:        co.Emails,
		EmailDetails:  co.EmailDetails,
		EmailSource:   co.EmailSource,
		Qualification: qual,
		ProductID:     p.ProductID,
		ProductName:   p.ProductName,
	}

	added, err := r.Store.SaveLead(lead)
	if err != nil {
		// Storage failure ends the run; retrying against a broken
		// database would only spin.
		r.emit(p.RunID, Step{Type: TypeError, Message: "storage failure: " + err.Error()})
		return fmt.Errorf("save lead %s: %w", co.Domain, err)
	}
	if !added {
		r.emit(p.RunID, Step{Type: TypeObservation, Message: co.Domain + " already saved, skipping duplicate"})
		st.note("duplicate: " + co.Domain)
		return nil
	}

	st.saved++
	sum.Leads = append(sum.Leads, lead)
	st.note(fmt.Sprintf("saved %s (score %d)", co.Domain, qual.Score))
	r.emit(p.RunID, Step{Type: TypeLead, Message: "lead saved: " + co.Name, Data: map[string]any{
		"lead":    lead,
		"saved":   st.saved,
		"target":  p.TargetCount,
		"persona": topPersona(co.EmailDetails),
	}})
	return nil
}

// passesGate applies the quality gate and names the first failing rule.
func passesGate(co domain.Company, q domain.Qualification) (string, bool) {
	if q.Score < gateMinScore {
		return fmt.Sprintf("score %d below %d", q.Score, gateMinScore), false
	}
	if q.Fit != gateFit {
		return "fit is " + q.Fit + ", need " + gateFit, false
	}
	if co.BestEmailConfidence() < gateMinEmailScore {
		return "no contact email with sufficient confidence", false
	}
	return "", true
}

func topPersona(details []domain.EmailDetail) string {
	best := ""
	conf := -1
	for _, d := range details {
		if d.Persona != "" && d.Confidence > conf {
			best, conf = d.Persona, d.Confidence
		}
	}
	return best
}

func (r *Runner) finishCancelled(runID string, sum Summary, st *runState) Summary {
	sum.SavedCount = st.saved
	sum.Iterations = st.iteration
	sum.Err = "run cancelled"
	r.emit(runID, Step{Type: TypeError, Message: "run cancelled", Data: map[string]any{"saved": st.saved}})
	return sum
}

func (r *Runner) emit(runID string, s Step) {
	s.At = time.Now().UTC()
	if r.Emit != nil {
		r.Emit(s)
	}
	if r.Hub != nil {
		r.Hub.Publish(events.MakeEvent(runID, s.Type, 1, s))
	}
	log.Printf("level=info msg=\"run step\" run_id=%s type=%s tool=%s", runID, s.Type, s.Tool)
}
