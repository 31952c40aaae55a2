package steam

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var steamIDPattern = regexp.MustCompile(`^\d{17}$`)

// IsSteamID reports whether s has the shape of a 64-bit community ID.
func IsSteamID(s string) bool {
	return steamIDPattern.MatchString(s)
}

// Profile is the public summary of a Steam account.
type Profile struct {
	SteamID     string `json:"steam_id"`
	PersonaName string `json:"persona_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// OwnedTitle is one game from an account's library.
type OwnedTitle struct {
	AppID         string `json:"steam_app_id"`
	Name          string `json:"name"`
	MinutesPlayed int    `json:"minutes_played"`
	IconURL       string `json:"icon_url,omitempty"`
}

// HoursPlayed converts the lifetime playtime to hours rounded to one decimal.
func (t OwnedTitle) HoursPlayed() decimal.Decimal {
	return MinutesToHours(t.MinutesPlayed)
}

func MinutesToHours(minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(1)
}

const iconBaseURL = "https://media.steampowered.com/steamcommunity/public/images/apps"

func iconURL(appID int64, hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d/%s.jpg", iconBaseURL, appID, hash)
}

// communityvisibilitystate 3 is "public"; 1 is private and 2 friends-only.
const visibilityPublic = 3

type vanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
		Message string `json:"message"`
	} `json:"response"`
}

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			SteamID                  string `json:"steamid"`
			PersonaName              string `json:"personaname"`
			AvatarFull               string `json:"avatarfull"`
			ProfileURL               string `json:"profileurl"`
			CommunityVisibilityState int    `json:"communityvisibilitystate"`
		} `json:"players"`
	} `json:"response"`
}

// ownedGamesResponse keeps GameCount and Games as pointers: Steam omits both
// for a hidden library and sends game_count 0 for a visible empty one.
type ownedGamesResponse struct {
	Response struct {
		GameCount *int `json:"game_count"`
		Games     *[]struct {
			AppID           int64  `json:"appid"`
			Name            string `json:"name"`
			PlaytimeForever int    `json:"playtime_forever"`
			ImgIconURL      string `json:"img_icon_url"`
		} `json:"games"`
	} `json:"response"`
}
