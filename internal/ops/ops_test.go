package ops

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/driftware/reef/internal/cli"
	"github.com/driftware/reef/internal/model"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	root    string
	pf      *model.ProjectFile
	loadErr error
	saved   []*model.Storefront
}

func (f *fakeStore) Root() string { return f.root }

func (f *fakeStore) LoadProject() (*model.ProjectFile, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.pf, nil
}

func (f *fakeStore) SaveStorefront(sf *model.Storefront) error {
	f.saved = append(f.saved, sf)
	if f.pf != nil {
		f.pf.Storefront = &model.LinkedStorefront{ID: sf.ID, Title: sf.Title}
	}
	return nil
}

// fakeAPI is a scripted StorefrontAPI that counts calls.
type fakeAPI struct {
	storefronts []model.Storefront
	listErr     error
	listCalls   int

	created     *model.Storefront
	createJobID string
	createErr   error
	createCalls int
	createName  string

	waitErr   error
	waitCalls int
}

func (f *fakeAPI) ListStorefronts(ctx context.Context) ([]model.Storefront, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.storefronts, nil
}

func (f *fakeAPI) CreateStorefront(ctx context.Context, title string) (*model.Storefront, string, error) {
	f.createCalls++
	f.createName = title
	if f.createErr != nil {
		return nil, "", f.createErr
	}
	return f.created, f.createJobID, nil
}

func (f *fakeAPI) WaitForJob(ctx context.Context, jobID string) error {
	f.waitCalls++
	return f.waitErr
}

// scriptedPrompter answers prompts from canned responses.
type scriptedPrompter struct {
	confirmAnswer bool
	confirmCalls  int

	selectAnswer  int
	selectCalls   int
	selectOptions []string

	inputAnswer  string
	inputCalls   int
	inputDefault string
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	p.confirmCalls++
	return p.confirmAnswer, nil
}

func (p *scriptedPrompter) Select(message string, options []string) (int, error) {
	p.selectCalls++
	p.selectOptions = options
	return p.selectAnswer, nil
}

func (p *scriptedPrompter) Input(message, def string) (string, error) {
	p.inputCalls++
	p.inputDefault = def
	if p.inputAnswer == "" {
		return def, nil
	}
	return p.inputAnswer, nil
}

// recordingReporter records phase titles and outcomes.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Start(title string) { r.events = append(r.events, "start:"+title) }
func (r *recordingReporter) Done()              { r.events = append(r.events, "done") }
func (r *recordingReporter) Fail()              { r.events = append(r.events, "fail") }

func linkedProject() *model.ProjectFile {
	return &model.ProjectFile{
		Version:    1,
		Shop:       "demo.shopwave.dev",
		Storefront: &model.LinkedStorefront{ID: "sf-1", Title: "Old Storefront"},
	}
}

func unlinkedProject() *model.ProjectFile {
	return &model.ProjectFile{Version: 1, Shop: "demo.shopwave.dev"}
}

func sampleStorefronts() []model.Storefront {
	return []model.Storefront{
		{ID: "sf-1", Title: "Old Storefront", ProductionURL: "https://old.tide.dev"},
		{ID: "sf-2", Title: "My Cool Shop", ProductionURL: "https://cool.tide.dev"},
	}
}

// TestLinkStorefrontRequiresShop verifies the precondition fails before any
// network call.
func TestLinkStorefrontRequiresShop(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: &model.ProjectFile{Version: 1}}
	client := &fakeAPI{}
	p := &scriptedPrompter{}

	_, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{})
	var cfgErr *cli.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if client.listCalls != 0 {
		t.Errorf("expected no network calls, got %d list calls", client.listCalls)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no config write")
	}
}

// TestLinkStorefrontDeclineOverwrite verifies declining the overwrite
// confirmation is a silent no-op.
func TestLinkStorefrontDeclineOverwrite(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: linkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{confirmAnswer: false}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if result.Status != LinkStatusDeclined {
		t.Errorf("expected LinkStatusDeclined, got %v", result.Status)
	}
	if result.Storefront != nil {
		t.Errorf("expected no storefront on decline")
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no config write on decline")
	}
	if client.listCalls != 0 {
		t.Errorf("expected no fetch after decline, got %d", client.listCalls)
	}
}

// TestLinkStorefrontForceSkipsConfirm verifies --force never prompts for
// overwrite confirmation.
func TestLinkStorefrontForceSkipsConfirm(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: linkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{
		Force:      true,
		Storefront: "My Cool Shop",
	})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if p.confirmCalls != 0 {
		t.Errorf("expected no overwrite confirmation with force, got %d", p.confirmCalls)
	}
	if result.Status != LinkStatusLinked {
		t.Errorf("expected LinkStatusLinked, got %v", result.Status)
	}
}

// TestLinkStorefrontExplicitMatch verifies exact title matching and
// persistence.
func TestLinkStorefrontExplicitMatch(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: unlinkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{
		Storefront: "My Cool Shop",
	})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if result.Status != LinkStatusLinked {
		t.Fatalf("expected LinkStatusLinked, got %v", result.Status)
	}
	if result.Storefront.ID != "sf-2" {
		t.Errorf("expected sf-2, got %s", result.Storefront.ID)
	}
	if len(store.saved) != 1 || store.saved[0].ID != "sf-2" {
		t.Errorf("expected sf-2 persisted exactly once, got %v", store.saved)
	}
	if p.selectCalls != 0 {
		t.Errorf("explicit match must not prompt for selection")
	}
}

// TestLinkStorefrontExplicitMatchIsCaseSensitive verifies the match is
// exact, not case-folded.
func TestLinkStorefrontExplicitMatchIsCaseSensitive(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: unlinkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{
		Storefront: "my cool shop",
	})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if result.Status != LinkStatusNotFound {
		t.Errorf("expected LinkStatusNotFound for case mismatch, got %v", result.Status)
	}
}

// TestLinkStorefrontExplicitNoMatch verifies the not-found outcome writes
// nothing and is distinct from declined.
func TestLinkStorefrontExplicitNoMatch(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: unlinkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{
		Storefront: "Nope",
	})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if result.Status != LinkStatusNotFound {
		t.Errorf("expected LinkStatusNotFound, got %v", result.Status)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no config write on not-found")
	}
}

// TestLinkStorefrontInteractiveSelect verifies picking an existing
// storefront resolves by identity against the fetched list.
func TestLinkStorefrontInteractiveSelect(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: unlinkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	p := &scriptedPrompter{selectAnswer: 1}

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if result.Storefront.ID != "sf-2" {
		t.Errorf("expected sf-2, got %s", result.Storefront.ID)
	}
	if client.listCalls != 1 {
		t.Errorf("expected exactly one list fetch, got %d", client.listCalls)
	}

	// The menu is the fetched titles plus the create sentinel, in order.
	want := []string{"Old Storefront", "My Cool Shop", createSentinel}
	if len(p.selectOptions) != len(want) {
		t.Fatalf("expected %d options, got %v", len(want), p.selectOptions)
	}
	for i, o := range want {
		if p.selectOptions[i] != o {
			t.Errorf("option %d: expected %q, got %q", i, o, p.selectOptions[i])
		}
	}
}

// TestLinkStorefrontCreateSentinel verifies the sentinel invokes the
// creation pipeline exactly once with no re-fetch.
func TestLinkStorefrontCreateSentinel(t *testing.T) {
	store := &fakeStore{root: "/home/dev/my-cool-shop", pf: unlinkedProject()}
	client := &fakeAPI{
		storefronts: sampleStorefronts(),
		created:     &model.Storefront{ID: "sf-new", Title: "My Cool Shop"},
		createJobID: "job-1",
	}
	p := &scriptedPrompter{selectAnswer: 2} // sentinel is last

	result, err := LinkStorefront(context.Background(), store, client, p, NopReporter{}, LinkOptions{})
	if err != nil {
		t.Fatalf("LinkStorefront failed: %v", err)
	}
	if client.createCalls != 1 {
		t.Errorf("expected exactly one create call, got %d", client.createCalls)
	}
	if client.listCalls != 1 {
		t.Errorf("expected no re-fetch after create, got %d list calls", client.listCalls)
	}
	if result.Status != LinkStatusLinked || result.Storefront.ID != "sf-new" {
		t.Errorf("expected new storefront linked, got %+v", result)
	}
	if len(store.saved) != 1 || store.saved[0].ID != "sf-new" {
		t.Errorf("expected created storefront persisted, got %v", store.saved)
	}
	// The prompted default name derives from the project root.
	if p.inputDefault != "My Cool Shop" {
		t.Errorf("expected default name %q, got %q", "My Cool Shop", p.inputDefault)
	}
}

// TestLinkStorefrontIdempotentForce verifies repeated forced links with the
// same explicit match persist the same storefront.
func TestLinkStorefrontIdempotentForce(t *testing.T) {
	store := &fakeStore{root: "/tmp/p", pf: unlinkedProject()}
	client := &fakeAPI{storefronts: sampleStorefronts()}
	opts := LinkOptions{Force: true, Storefront: "My Cool Shop"}

	for i := 0; i < 2; i++ {
		result, err := LinkStorefront(context.Background(), store, client, &scriptedPrompter{}, NopReporter{}, opts)
		if err != nil {
			t.Fatalf("run %d: LinkStorefront failed: %v", i, err)
		}
		if result.Storefront.ID != "sf-2" {
			t.Errorf("run %d: expected sf-2, got %s", i, result.Storefront.ID)
		}
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected one write per run, got %d", len(store.saved))
	}
	if store.saved[0].ID != store.saved[1].ID {
		t.Errorf("expected identical persisted storefront both runs")
	}
}

// TestCreateNewStorefrontCreatorError verifies a phase 1 failure propagates
// unchanged and phase 2 never runs.
func TestCreateNewStorefrontCreatorError(t *testing.T) {
	boom := fmt.Errorf("create exploded")
	client := &fakeAPI{createErr: boom}
	r := &recordingReporter{}

	_, err := CreateNewStorefront(context.Background(), "/home/dev/shop", client, &scriptedPrompter{}, r)
	if !errors.Is(err, boom) {
		t.Fatalf("expected creator error to propagate, got %v", err)
	}
	if client.waitCalls != 0 {
		t.Errorf("expected waiter never called, got %d", client.waitCalls)
	}
	for _, e := range r.events {
		if e == "start:Creating API tokens" {
			t.Errorf("phase 2 must not start after a phase 1 failure: %v", r.events)
		}
	}
}

// TestCreateNewStorefrontNoJob verifies that a create response with no job
// handle skips the waiter and fails the final check.
func TestCreateNewStorefrontNoJob(t *testing.T) {
	client := &fakeAPI{created: &model.Storefront{ID: "sf-new", Title: "Shop"}}
	r := &recordingReporter{}

	_, err := CreateNewStorefront(context.Background(), "/home/dev/shop", client, &scriptedPrompter{}, r)
	var unknown *cli.UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownError, got %v", err)
	}
	if client.waitCalls != 0 {
		t.Errorf("expected waiter never called without a job, got %d", client.waitCalls)
	}
	for _, e := range r.events {
		if e == "start:Creating API tokens" {
			t.Errorf("phase 2 must be skipped without a job handle: %v", r.events)
		}
	}
}

// TestCreateNewStorefrontWaiterError verifies the waiter's failure is
// swallowed: the held storefront is cleared and UnknownError raised instead.
func TestCreateNewStorefrontWaiterError(t *testing.T) {
	waitErr := fmt.Errorf("provisioning timed out")
	client := &fakeAPI{
		created:     &model.Storefront{ID: "sf-new", Title: "Shop"},
		createJobID: "job-1",
		waitErr:     waitErr,
	}

	sf, err := CreateNewStorefront(context.Background(), "/home/dev/shop", client, &scriptedPrompter{}, NopReporter{})
	if sf != nil {
		t.Errorf("expected no storefront after waiter failure, got %+v", sf)
	}
	var unknown *cli.UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownError, got %v", err)
	}
	if errors.Is(err, waitErr) {
		t.Errorf("waiter error must not propagate")
	}
	if client.waitCalls != 1 {
		t.Errorf("expected exactly one job wait, got %d", client.waitCalls)
	}
}

// TestCreateNewStorefrontSuccess verifies the happy path and the prompted
// name override.
func TestCreateNewStorefrontSuccess(t *testing.T) {
	client := &fakeAPI{
		created:     &model.Storefront{ID: "sf-new", Title: "Renamed"},
		createJobID: "job-1",
	}
	p := &scriptedPrompter{inputAnswer: "Renamed"}
	r := &recordingReporter{}

	sf, err := CreateNewStorefront(context.Background(), "/home/dev/my-shop", client, p, r)
	if err != nil {
		t.Fatalf("CreateNewStorefront failed: %v", err)
	}
	if sf.ID != "sf-new" {
		t.Errorf("expected sf-new, got %s", sf.ID)
	}
	if client.createName != "Renamed" {
		t.Errorf("expected overridden name sent to creator, got %q", client.createName)
	}
	if client.createCalls != 1 || client.waitCalls != 1 {
		t.Errorf("expected one create and one wait, got %d/%d", client.createCalls, client.waitCalls)
	}

	want := []string{"start:Creating storefront", "done", "start:Creating API tokens", "done"}
	if len(r.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, r.events)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], r.events[i])
		}
	}
}

func TestDefaultStorefrontName(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"/home/dev/my-cool-shop", "My Cool Shop"},
		{"/home/dev/shop", "Shop"},
		{"my_snake_store", "My Snake Store"},
		{"/projects/acme.storefront", "Acme Storefront"},
		{"/projects/Already Nice", "Already Nice"},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := DefaultStorefrontName(tt.root); got != tt.want {
			t.Errorf("DefaultStorefrontName(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}
