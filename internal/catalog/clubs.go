package catalog

import "sort"

// clubsByLeague is the fixed lookup table backing the club filter. The club
// dimension is only offered for leagues listed here.
var clubsByLeague = map[string][]string{
	"Premier League": {
		"Arsenal", "Chelsea", "Liverpool", "Manchester City",
		"Manchester United", "Newcastle", "Tottenham",
	},
	"La Liga": {
		"Atletico Madrid", "Barcelona", "Real Madrid", "Sevilla", "Valencia",
	},
	"Serie A": {
		"AC Milan", "Inter", "Juventus", "Napoli", "Roma",
	},
	"Bundesliga": {
		"Bayer Leverkusen", "Bayern Munich", "Borussia Dortmund", "RB Leipzig",
	},
	"Ligue 1": {
		"Lyon", "Marseille", "Monaco", "PSG",
	},
}

// ClubsForLeague returns the clubs selectable under the league, or nil when
// the league has no club list.
func ClubsForLeague(league string) []string {
	clubs, ok := clubsByLeague[league]
	if !ok {
		return nil
	}
	out := make([]string, len(clubs))
	copy(out, clubs)
	return out
}

// Leagues returns the leagues that carry a club list, sorted by name.
func Leagues() []string {
	out := make([]string, 0, len(clubsByLeague))
	for league := range clubsByLeague {
		out = append(out, league)
	}
	sort.Strings(out)
	return out
}
