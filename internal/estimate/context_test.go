package estimate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/model"
)

func ptr[T any](v T) *T { return &v }

const (
	matMaple     int64 = 1
	matMelamine  int64 = 2
	matBirchPly  int64 = 3
	finStain     int64 = 10
	finLacquer   int64 = 11
	finGlaze     int64 = 12
	hwHinge      int64 = 20
	hwSlide      int64 = 21
	hwPullSatin  int64 = 22
	missingMatID int64 = 404
)

func testSnapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Materials: catalog.Materials{
			{ID: matMaple, Name: "Maple", NeedsFinish: true, IsActive: true},
			{ID: matMelamine, Name: "White Melamine", NeedsFinish: false, IsActive: true},
			{ID: matBirchPly, Name: "Birch Ply", NeedsFinish: true, IsActive: true},
		},
		Finishes: catalog.Finishes{
			{ID: finStain, Name: "Stain", FinishMarkup: 20, ShopMarkup: 10, IsActive: true},
			{ID: finLacquer, Name: "Lacquer", FinishMarkup: 15, ShopMarkup: 5, IsActive: true},
			{ID: finGlaze, Name: "Glaze", FinishMarkup: 30, ShopMarkup: 0, IsActive: true},
		},
		Hardware: catalog.HardwareItems{
			{ID: hwHinge, Name: "Soft-close hinge", Kind: catalog.KindHinge, UnitCost: 4.5, IsActive: true},
			{ID: hwSlide, Name: "Undermount slide", Kind: catalog.KindSlide, UnitCost: 32, IsActive: true},
		},
		LaborServices: catalog.LaborServices{
			{ID: catalog.ShopServiceID, Name: "Shop", HourlyRate: 60, IsActive: true},
			{ID: catalog.FinishServiceID, Name: "Finish", HourlyRate: 55, IsActive: true},
			{ID: catalog.AssemblyServiceID, Name: "Assembly", HourlyRate: 50, IsActive: false},
			{ID: catalog.InstallServiceID, Name: "Install", HourlyRate: 70, IsActive: true},
		},
	}
}

func testOrg() *model.OrganizationDefaults {
	return &model.OrganizationDefaults{
		ID:           1,
		CabinetStyle: "face_frame",
		BoxMat:       matMelamine,
		FaceMat:      matMaple,
		DrawerBoxMat: matBirchPly,
		Hinge:        hwHinge,
		Slide:        hwSlide,
		Pull:         hwPullSatin,
		FaceFinish:   []int64{finStain, finLacquer},
		BoxFinish:    []int64{finLacquer},
		DoorStyle:    "shaker",
		LaborRates:   map[int64]float64{catalog.InstallServiceID: 85},
	}
}

func TestBuildSectionContext_RejectsMissingSectionOrOrg(t *testing.T) {
	_, err := BuildSectionContext(nil, nil, testOrg(), testSnapshot())
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildSectionContext(&model.Section{}, nil, nil, testSnapshot())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildSectionContext_FaceFinishMultipliers(t *testing.T) {
	res, err := BuildSectionContext(&model.Section{ID: 7, Notes: "island"}, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	face := res.Context.FaceMaterial
	assert.True(t, face.Found)
	assert.True(t, face.FinishNeeded)
	assert.InDelta(t, 1.35, face.FinishMultiplier, 1e-9)
	assert.InDelta(t, 1.15, face.ShopMultiplier, 1e-9)
	assert.Len(t, face.Finishes, 2)

	assert.Equal(t, []int64{finStain, finLacquer}, res.Section.FaceFinish)
	assert.Equal(t, int64(7), res.Section.ID)
	assert.Equal(t, "island", res.Section.Notes)
}

func TestBuildSectionContext_PrefinishedBoxDiscardsFinishes(t *testing.T) {
	res, err := BuildSectionContext(&model.Section{}, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	box := res.Context.BoxMaterial
	assert.False(t, box.FinishNeeded)
	assert.Equal(t, 0.0, box.FinishMultiplier)
	assert.Equal(t, 1.0, box.ShopMultiplier)
	assert.Empty(t, box.Finishes)
	assert.Empty(t, res.Section.BoxFinish)
}

func TestBuildSectionContext_SectionFinishOverride(t *testing.T) {
	section := &model.Section{FaceFinish: []int64{finGlaze}}
	res, err := BuildSectionContext(section, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	assert.InDelta(t, 1.30, res.Context.FaceMaterial.FinishMultiplier, 1e-9)
	assert.InDelta(t, 1.0, res.Context.FaceMaterial.ShopMultiplier, 1e-9)

	// An explicit empty selection on a material that needs finish is a bare
	// multiplier of one.
	section = &model.Section{FaceFinish: []int64{}}
	res, err = BuildSectionContext(section, nil, testOrg(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Context.FaceMaterial.FinishMultiplier)
}

func TestBuildSectionContext_UnknownFinishIgnored(t *testing.T) {
	section := &model.Section{FaceFinish: []int64{finStain, 999}}
	res, err := BuildSectionContext(section, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	assert.InDelta(t, 1.20, res.Context.FaceMaterial.FinishMultiplier, 1e-9)
	assert.Len(t, res.Context.FaceMaterial.Finishes, 1)
	assert.Equal(t, []int64{finStain, 999}, res.Section.FaceFinish)
}

func TestBuildSectionContext_ProjectSwitchesFaceToPrefinished(t *testing.T) {
	project := &model.ProjectDefaults{FaceMat: ptr(matMelamine)}
	res, err := BuildSectionContext(&model.Section{}, project, testOrg(), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, matMelamine, res.Section.FaceMat)
	assert.False(t, res.Context.FaceMaterial.FinishNeeded)
	assert.Equal(t, 0.0, res.Context.FaceMaterial.FinishMultiplier)
	assert.Empty(t, res.Section.FaceFinish)

	// Doors follow the face material, so they lose their finish too.
	assert.Equal(t, matMelamine, res.Section.DoorMat)
	assert.Empty(t, res.Section.DoorFinish)
	assert.Equal(t, 0.0, res.Context.DoorMaterial.FinishMultiplier)
}

func TestBuildSectionContext_DoorMaterialOverride(t *testing.T) {
	project := &model.ProjectDefaults{FaceMat: ptr(matMelamine)}
	section := &model.Section{DoorMat: ptr(matMaple), DoorFinish: []int64{finGlaze}}
	res, err := BuildSectionContext(section, project, testOrg(), testSnapshot())
	require.NoError(t, err)

	assert.True(t, res.Context.DoorMaterial.FinishNeeded)
	assert.InDelta(t, 1.30, res.Context.DoorMaterial.FinishMultiplier, 1e-9)
	assert.False(t, res.Context.DrawerFrontMaterial.FinishNeeded)
}

func TestBuildSectionContext_MissingCatalogRowsDegrade(t *testing.T) {
	section := &model.Section{FaceMat: ptr(missingMatID), FaceFinish: []int64{finStain}}
	res, err := BuildSectionContext(section, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	face := res.Context.FaceMaterial
	assert.False(t, face.Found)
	assert.False(t, face.FinishNeeded)
	assert.Equal(t, 0.0, face.FinishMultiplier)
	assert.Equal(t, 1.0, face.ShopMultiplier)

	assert.False(t, res.Context.Pull.Found)
	assert.True(t, res.Context.Hinge.Found)

	res, err = BuildSectionContext(&model.Section{}, nil, testOrg(), catalog.Snapshot{})
	require.NoError(t, err)
	assert.False(t, res.Context.FaceMaterial.Found)
	assert.Empty(t, res.Context.LaborRates)
}

func TestBuildSectionContext_LaborRatesApplyOrgOverrides(t *testing.T) {
	res, err := BuildSectionContext(&model.Section{}, nil, testOrg(), testSnapshot())
	require.NoError(t, err)

	want := map[int64]float64{
		catalog.ShopServiceID:    60,
		catalog.FinishServiceID:  55,
		catalog.InstallServiceID: 85,
	}
	if diff := cmp.Diff(want, res.Context.LaborRates); diff != "" {
		t.Fatalf("labor rates mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSectionContext_DoesNotMutateCatalogs(t *testing.T) {
	snap := testSnapshot()
	before := testSnapshot()

	_, err := BuildSectionContext(&model.Section{FaceFinish: []int64{finGlaze}}, nil, testOrg(), snap)
	require.NoError(t, err)

	if diff := cmp.Diff(before, snap); diff != "" {
		t.Fatalf("snapshot mutated (-before +after):\n%s", diff)
	}
}
