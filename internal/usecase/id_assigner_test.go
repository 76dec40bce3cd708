package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
)

func TestAssignedID_Priority(t *testing.T) {
	tests := []struct {
		name                    string
		document, uid, nickname string
		want                    string
	}{
		{"document wins over uid", "AB123", "42", "", "pass_AB123"},
		{"document wins over all", "AB123", "42", "sky", "pass_AB123"},
		{"uid over nickname", "", "42", "sky", "id_42"},
		{"nickname only", "", "", "sky", "nick_sky"},
		{"nothing", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignedID(tt.document, tt.uid, tt.nickname))
		})
	}
}

func TestAssignIDs_DocumentFromRemarks(t *testing.T) {
	identities := []entity.FrequentFlyerIdentity{
		{UID: "42", FFKey: "SU1234567"},
		{UID: "43", FFKey: "AF445566", Nickname: "frenchie"},
		{FFKey: "DL998877", Nickname: "sky"},
	}
	reservation := []entity.FlightLeg{
		{Document: "AB123", Remarks: "DOCS FF#SU 1234567"},
		{Document: "AB123", Remarks: "FF#SU1234567"},
		{Document: "CD1", Remarks: "ff: af-445566"},
		{Document: "CD2", Remarks: "FF AF445566"},
		{Document: "", Remarks: "FF#DL998877"},
	}

	got := AssignIDs(identities, reservation)

	require.Len(t, got.Identities, 3)
	assert.Equal(t, "AB123", got.Identities[0].CanonicalDocument)
	assert.Equal(t, "pass_AB123", got.Identities[0].AssignedID)

	// referenced by two documents: no document attached
	assert.Empty(t, got.Identities[1].CanonicalDocument)
	assert.Equal(t, "id_43", got.Identities[1].AssignedID)
	assert.Equal(t, []entity.FFKeyDocumentConflict{{FFKey: "AF445566", Documents: []string{"CD1", "CD2"}}}, got.Conflicts)

	assert.Equal(t, "nick_sky", got.Identities[2].AssignedID)
}

func TestAssignIDs_DropsUnlabelled(t *testing.T) {
	got := AssignIDs([]entity.FrequentFlyerIdentity{{FFKey: "SU1"}, {FFKey: "SU2", UID: "7"}}, nil)

	assert.Equal(t, 1, got.Unlabelled)
	require.Len(t, got.Identities, 1)
	assert.Equal(t, "id_7", got.Identities[0].AssignedID)
}
