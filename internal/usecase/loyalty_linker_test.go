package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"paxfusion-service/internal/domain/entity"
)

func forumProfile(nick string, loyalty ...entity.ForumLoyalty) entity.ForumProfile {
	return entity.ForumProfile{NickName: nick, Loyalty: loyalty}
}

func TestLinkLoyalty_BuildsIdentities(t *testing.T) {
	exchange := []entity.ExchangeFlight{
		{FFKey: "SU 111", FlightNumber: "SU1"},
		{FFKey: "SU111", FlightNumber: "SU2"},
		{FFKey: "DL 222", FlightNumber: "DL1"},
	}
	club := []entity.ClubActivity{
		{UID: "1", CardNumber: "SU111"},
		{UID: "1", CardNumber: "SU111"},
		{UID: "3", CardNumber: "AF333"},
	}
	forum := []entity.ForumProfile{
		forumProfile("alpha", entity.ForumLoyalty{Programm: "SU", Number: "111"}),
		forumProfile("delta", entity.ForumLoyalty{Programm: "DL", Number: "222"}),
		forumProfile("kilo", entity.ForumLoyalty{Programm: "KL", Number: "444"}),
	}

	got := LinkLoyalty(exchange, club, forum)

	want := []entity.FrequentFlyerIdentity{
		{UID: "1", FFKey: "SU111", Nickname: "alpha"},
		{FFKey: "DL222", Nickname: "delta"},
		{UID: "3", FFKey: "AF333"},
		{FFKey: "KL444", Nickname: "kilo"},
	}
	if diff := cmp.Diff(want, got.Identities); diff != "" {
		t.Errorf("Identities mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.ConflictedKeys)
	assert.Empty(t, got.NicknameConflicts)
}

func TestLinkLoyalty_ConflictedKeys(t *testing.T) {
	club := []entity.ClubActivity{
		{UID: "1", CardNumber: "SU111"},
		{UID: "2", CardNumber: "SU111"},
		// uid 2 also owns an unrelated key; it is tainted by the conflict
		{UID: "2", CardNumber: "SU222"},
		{UID: "3", CardNumber: "SU333"},
	}
	forum := []entity.ForumProfile{
		// the conflicted key gets no owner from the forum either
		forumProfile("thief", entity.ForumLoyalty{Programm: "SU", Number: "111"}),
	}

	got := LinkLoyalty(nil, club, forum)

	assert.Equal(t, []entity.ConflictedKey{
		{UID: "1", FFKey: "SU111"},
		{UID: "2", FFKey: "SU111"},
	}, got.ConflictedKeys)
	assert.Equal(t, []entity.FrequentFlyerIdentity{{UID: "3", FFKey: "SU333"}}, got.Identities)
}

func TestLinkLoyalty_NicknameConflict(t *testing.T) {
	exchange := []entity.ExchangeFlight{{FFKey: "SU111"}}
	forum := []entity.ForumProfile{
		forumProfile("alpha", entity.ForumLoyalty{Programm: "SU", Number: "111"}),
		forumProfile("bravo", entity.ForumLoyalty{Programm: "su", Number: "111"}),
		forumProfile("x", entity.ForumLoyalty{Programm: "AF", Number: "9"}),
		forumProfile("y", entity.ForumLoyalty{Programm: "AF", Number: "9"}),
	}

	got := LinkLoyalty(exchange, nil, forum)

	assert.Equal(t, []entity.NicknameConflict{
		{FFKey: "SU111", Nicknames: []string{"alpha", "bravo"}},
		{FFKey: "AF9", Nicknames: []string{"x", "y"}},
	}, got.NicknameConflicts)
	// the exchange binding survives without a nickname; the forum-only key is dropped
	assert.Equal(t, []entity.FrequentFlyerIdentity{{FFKey: "SU111"}}, got.Identities)
}

// Properties checked against a messy input
func TestLinkLoyalty_InjectivityAndCoverage(t *testing.T) {
	exchange := []entity.ExchangeFlight{
		{FFKey: "SU1"}, {FFKey: "SU2"}, {FFKey: "su-1"}, {FFKey: "AF7"}, {FFKey: ""},
	}
	club := []entity.ClubActivity{
		{UID: "10", CardNumber: "SU1"},
		{UID: "11", CardNumber: "SU1"},
		{UID: "11", CardNumber: "SU2"},
		{UID: "12", CardNumber: "AF7"},
		{UID: "12", CardNumber: "KL5"},
		{UID: "", CardNumber: "KL6"},
	}
	forum := []entity.ForumProfile{
		forumProfile("a", entity.ForumLoyalty{Programm: "AF", Number: "7"}),
		forumProfile("b", entity.ForumLoyalty{Programm: "KL", Number: "6"}, entity.ForumLoyalty{Programm: "SU", Number: "2"}),
		forumProfile("c", entity.ForumLoyalty{Programm: "DL", Number: "8"}),
	}

	got := LinkLoyalty(exchange, club, forum)

	keys := make(map[string]bool)
	for _, identity := range got.Identities {
		if identity.FFKey == "" {
			continue
		}
		assert.False(t, keys[identity.FFKey], "ffkey %s shared", identity.FFKey)
		keys[identity.FFKey] = true
	}

	uidsByKey := make(map[string]map[string]bool)
	for _, row := range club {
		key := row.CardNumber
		if uidsByKey[key] == nil {
			uidsByKey[key] = make(map[string]bool)
		}
		if row.UID != "" {
			uidsByKey[key][row.UID] = true
		}
	}
	for _, ck := range got.ConflictedKeys {
		assert.GreaterOrEqual(t, len(uidsByKey[ck.FFKey]), 2)
		for _, identity := range got.Identities {
			assert.NotEqual(t, ck.UID, identity.UID)
		}
	}
	assert.NotEmpty(t, got.ConflictedKeys)
}
