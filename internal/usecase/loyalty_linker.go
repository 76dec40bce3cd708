package usecase

import (
	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/utils"
)

// LinkResult is the output of the loyalty-identity linker
type LinkResult struct {
	Identities        []entity.FrequentFlyerIdentity
	ConflictedKeys    []entity.ConflictedKey
	NicknameConflicts []entity.NicknameConflict
}

// LinkLoyalty builds the uid <-> ffkey <-> nickname identity graph.
//
//  1. ffkeys of the exchange feed are joined with (card, uid) pairs of the club
//     export; exchange keys come first, club-only cards follow.
//  2. A key bound to two or more uids is conflicted: its rows move to the audit
//     table and no owner is assigned to it.
//  3. The remaining bindings are joined with forum program keys. A program key
//     claimed by several nicknames attaches no nickname.
//  4. Bindings whose uid was tainted by a conflicted key are removed.
//
// The returned identities never share an ffkey.
func LinkLoyalty(exchange []entity.ExchangeFlight, club []entity.ClubActivity, forum []entity.ForumProfile) LinkResult {
	var keyOrder []string
	uidsByKey := make(map[string][]string)
	addKey := func(key string) {
		if _, ok := uidsByKey[key]; !ok {
			uidsByKey[key] = nil
			keyOrder = append(keyOrder, key)
		}
	}
	for _, row := range exchange {
		if key := utils.NormalizeFFKey(row.FFKey); key != "" {
			addKey(key)
		}
	}
	for _, row := range club {
		key := utils.NormalizeFFKey(row.CardNumber)
		if key == "" {
			continue
		}
		addKey(key)
		if uid := trimmed(row.UID); uid != "" {
			uidsByKey[key] = appendUnique(uidsByKey[key], uid)
		}
	}

	var result LinkResult
	conflictedKeys := make(map[string]struct{})
	conflictedUIDs := make(map[string]struct{})
	var working []entity.FrequentFlyerIdentity
	for _, key := range keyOrder {
		uids := uidsByKey[key]
		if len(uids) > 1 {
			conflictedKeys[key] = struct{}{}
			for _, uid := range uids {
				conflictedUIDs[uid] = struct{}{}
				result.ConflictedKeys = append(result.ConflictedKeys, entity.ConflictedKey{UID: uid, FFKey: key})
			}
			continue
		}
		identity := entity.FrequentFlyerIdentity{FFKey: key}
		if len(uids) == 1 {
			identity.UID = uids[0]
		}
		working = append(working, identity)
	}

	var programOrder []string
	nicknamesByKey := make(map[string][]string)
	for _, profile := range forum {
		nick := trimmed(profile.NickName)
		if nick == "" {
			continue
		}
		for _, membership := range profile.Loyalty {
			key := utils.NormalizeFFKey(membership.Programm, membership.Number)
			if key == "" {
				continue
			}
			if _, conflicted := conflictedKeys[key]; conflicted {
				continue
			}
			if _, ok := nicknamesByKey[key]; !ok {
				programOrder = append(programOrder, key)
			}
			nicknamesByKey[key] = appendUnique(nicknamesByKey[key], nick)
		}
	}
	for _, key := range programOrder {
		if nicks := nicknamesByKey[key]; len(nicks) > 1 {
			result.NicknameConflicts = append(result.NicknameConflicts, entity.NicknameConflict{FFKey: key, Nicknames: nicks})
		}
	}

	known := make(map[string]struct{}, len(working))
	for i := range working {
		known[working[i].FFKey] = struct{}{}
		if nicks := nicknamesByKey[working[i].FFKey]; len(nicks) == 1 {
			working[i].Nickname = nicks[0]
		}
	}
	for _, key := range programOrder {
		if _, ok := known[key]; ok {
			continue
		}
		if nicks := nicknamesByKey[key]; len(nicks) == 1 {
			working = append(working, entity.FrequentFlyerIdentity{FFKey: key, Nickname: nicks[0]})
		}
	}

	for _, identity := range working {
		if _, tainted := conflictedUIDs[identity.UID]; tainted && identity.UID != "" {
			continue
		}
		result.Identities = append(result.Identities, identity)
	}
	return result
}
