package user

// badgeDefinitions is the canonical list of badges.
// Keep IDs and thresholds stable because clients render these directly.
func badgeDefinitions() []Badge {
	return []Badge{
		{ID: "conversationalist", Name: "Conversationalist", MinPoints: 30, Icon: "comment-dots"},
		{ID: "social_butterfly", Name: "Social Butterfly", MinPoints: 40, Icon: "users"},
		{ID: "discussion_master", Name: "Discussion Master", MinPoints: 70, Icon: "comments"},
		{ID: "public_speaker", Name: "Public Speaker", MinPoints: 100, Icon: "microphone"},
		{ID: "networking_pro", Name: "Networking Pro", MinPoints: 110, Icon: "handshake"},
	}
}

// UnlockedBadges returns every badge unlocked for the given points total.
func UnlockedBadges(points int) []Badge {
	var unlocked []Badge
	for _, b := range badgeDefinitions() {
		if points >= b.MinPoints {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// AllBadges returns a copy of the full badge catalog.
func AllBadges() []Badge {
	defs := badgeDefinitions()
	out := make([]Badge, len(defs))
	copy(out, defs)
	return out
}
