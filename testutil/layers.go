// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import "github.com/danielhkuo/mapvote/models"

func testLayer(id, mapName, mode, version, team1, team2 string) models.Layer {
	return models.Layer{
		ID:       id,
		Map:      mapName,
		Gamemode: mode,
		Version:  version,
		Teams:    [2]models.Team{{Faction: team1}, {Faction: team2}},
	}
}

// Layers returns a small catalog covering every gamemode the engine cares
// about. Each call returns a fresh slice.
func Layers() []models.Layer {
	return []models.Layer{
		testLayer("Gorodok_RAAS_v1", "Gorodok", "RAAS", "v1", "Russian Ground Forces", "United States Army"),
		testLayer("Gorodok_AAS_v2", "Gorodok", "AAS", "v2", "Russian Ground Forces", "Canadian Army"),
		testLayer("Narva_RAAS_v1", "Narva", "RAAS", "v1", "Russian Ground Forces", "British Army"),
		testLayer("Narva_AAS_v1", "Narva", "AAS", "v1", "United States Marine Corps", "Russian Ground Forces"),
		testLayer("Kohat_RAAS_v2", "Kohat", "RAAS", "v2", "Middle Eastern Alliance", "Insurgent Forces"),
		testLayer("Kohat_Invasion_v1", "Kohat", "Invasion", "v1", "British Army", "Insurgent Forces"),
		testLayer("Mutaha_AAS_v1", "Mutaha", "AAS", "v1", "Middle Eastern Alliance", "Russian Ground Forces"),
		testLayer("Fallujah_RAAS_v1", "Fallujah", "RAAS", "v1", "United States Marine Corps", "Irregular Militia Forces"),
		testLayer("Mestia_AAS_v1", "Mestia", "AAS", "v1", "Australian Defence Force", "Russian Ground Forces"),
		testLayer("Skorpo_Invasion_v1", "Skorpo", "Invasion", "v1", "British Army", "Irregular Militia Forces"),
		testLayer("Sumari_Seed_v1", "Sumari", "Seed", "v1", "British Army", "Insurgent Forces"),
		testLayer("Logar_Seed_v1", "Logar", "Seed", "v1", "United States Army", "Insurgent Forces"),
		testLayer("Tallil_Skirmish_v1", "Tallil", "Skirmish", "v1", "British Army", "Irregular Militia Forces"),
	}
}
