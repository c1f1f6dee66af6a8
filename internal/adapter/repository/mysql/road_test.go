package mysql

import (
	"context"
	"errors"
	"testing"

	domain "roadwatch/internal/domain/road"
	infra "roadwatch/internal/infrastructure/db"
	"roadwatch/pkg/id"

	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB. The road schema is plain types
// and json columns, so the domain models migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Road{}, &domain.Feedback{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeRoad(name string, approved bool, lat, lng float64) *domain.Road {
	return &domain.Road{
		RoadID:                 id.NewID32(),
		RoadName:               name,
		Contractor:             "ACME Infra",
		ApprovedBy:             "City Council",
		TotalCost:              "12 Cr",
		PromisedCompletionDate: "2024-06-01",
		ActualCompletionDate:   "2025-01-15",
		MaintenanceFirm:        "ACME Maintenance",
		Status:                 "Completed",
		Lat:                    lat,
		Lng:                    lng,
		Images:                 domain.StringList{},
		ExtraFields:            domain.ExtraFields{"ward": "12"},
		AddedByUser:            "asha",
		Approved:               approved,
	}
}

func TestRoadRepository_ApprovalVisibility(t *testing.T) {
	db := openTestDB(t)
	repo := NewRoadRepository(db)
	ctx := context.Background()

	pending := makeRoad("Pending Road", false, 12.9, 77.6)
	approved := makeRoad("Approved Road", true, 12.95, 77.65)
	for _, r := range []*domain.Road{pending, approved} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if _, err := repo.GetApprovedByRoadID(ctx, pending.RoadID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("pending road must be invisible to approved lookup: %v", err)
	}
	got, err := repo.GetApprovedByRoadID(ctx, approved.RoadID)
	if err != nil {
		t.Fatalf("GetApprovedByRoadID: %v", err)
	}
	if got.ExtraFields["ward"] != "12" {
		t.Fatalf("extra fields must round-trip: %v", got.ExtraFields)
	}

	// GetByRoadID ignores moderation state.
	if _, err := repo.GetByRoadID(ctx, pending.RoadID); err != nil {
		t.Fatalf("GetByRoadID: %v", err)
	}

	nApproved, _ := repo.CountApproved(ctx)
	nPending, _ := repo.CountPending(ctx)
	if nApproved != 1 || nPending != 1 {
		t.Fatalf("counts: approved=%d pending=%d", nApproved, nPending)
	}

	list, err := repo.ListPending(ctx, 0, 10)
	if err != nil || len(list) != 1 || list[0].RoadID != pending.RoadID {
		t.Fatalf("ListPending: %v %v", list, err)
	}
}

func TestRoadRepository_OSMWayLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewRoadRepository(db)
	ctx := context.Background()

	r := makeRoad("NH 48", false, 12.9, 77.6)
	r.OSMWayID = "12345"
	r.HasOSMData = true
	r.Geometry = domain.LineString{{77.6, 12.9}, {77.7, 13.0}}
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Importer dedupe path sees pending rows too.
	if _, err := repo.GetByOSMWayID(ctx, "12345"); err != nil {
		t.Fatalf("GetByOSMWayID: %v", err)
	}
	if _, err := repo.GetApprovedByOSMWayID(ctx, "12345"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("pending row must not satisfy approved way lookup: %v", err)
	}

	r.Approved = true
	if err := repo.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetApprovedByOSMWayID(ctx, "12345")
	if err != nil {
		t.Fatalf("GetApprovedByOSMWayID: %v", err)
	}
	if len(got.Geometry) != 2 || got.Geometry[0] != [2]float64{77.6, 12.9} {
		t.Fatalf("geometry must round-trip through the json column: %v", got.Geometry)
	}
}

func TestRoadRepository_ListApprovedInBBox(t *testing.T) {
	db := openTestDB(t)
	repo := NewRoadRepository(db)
	ctx := context.Background()

	inside := makeRoad("Inside", true, 12.9, 77.6)
	outside := makeRoad("Outside", true, 28.6, 77.2)
	pendingInside := makeRoad("Pending Inside", false, 12.95, 77.65)
	for _, r := range []*domain.Road{inside, outside, pendingInside} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	bbox := &domain.BBox{MinLat: 12, MaxLat: 14, MinLng: 77, MaxLng: 78}
	got, err := repo.ListApprovedInBBox(ctx, bbox, 100)
	if err != nil {
		t.Fatalf("ListApprovedInBBox: %v", err)
	}
	if len(got) != 1 || got[0].RoadID != inside.RoadID {
		t.Fatalf("bbox filter: %v", got)
	}

	// nil bbox = every approved road.
	got, err = repo.ListApprovedInBBox(ctx, nil, 100)
	if err != nil || len(got) != 2 {
		t.Fatalf("unfiltered: %v %v", got, err)
	}
}

func TestRoadRepository_DeleteWithFeedback(t *testing.T) {
	db := openTestDB(t)
	roads := NewRoadRepository(db)
	feedback := NewFeedbackRepository(db)
	ctx := context.Background()

	r := makeRoad("Doomed Road", true, 12.9, 77.6)
	if err := roads.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other := makeRoad("Survivor", true, 13.0, 77.7)
	if err := roads.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, roadID := range []string{r.RoadID, r.RoadID, other.RoadID} {
		f := &domain.Feedback{FeedbackID: id.NewID32(), RoadID: roadID, Username: "asha", Comment: "hm"}
		if err := feedback.Create(ctx, f); err != nil {
			t.Fatalf("feedback create: %v", err)
		}
	}

	if err := roads.DeleteWithFeedback(ctx, r); err != nil {
		t.Fatalf("DeleteWithFeedback: %v", err)
	}
	if _, err := roads.GetByRoadID(ctx, r.RoadID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("road must be gone: %v", err)
	}
	if n, _ := feedback.CountByRoadID(ctx, r.RoadID); n != 0 {
		t.Fatalf("feedback must cascade: %d rows left", n)
	}
	// Unrelated feedback survives.
	if n, _ := feedback.CountByRoadID(ctx, other.RoadID); n != 1 {
		t.Fatalf("unrelated feedback lost: %d", n)
	}
}
