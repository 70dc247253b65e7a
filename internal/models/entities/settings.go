package entities

import "time"

// PointValues holds the award sizes applied by the rules engine.
// ReceiveBadRating is negative.
type PointValues struct {
	WriteLetter        int `json:"writeLetter"`
	ReplyToLetter      int `json:"replyToLetter"`
	ReplyFast          int `json:"replyFast"`
	GiveGoodRating     int `json:"giveGoodRating"`
	ReceiveGoodRating  int `json:"receiveGoodRating"`
	ReceiveBadRating   int `json:"receiveBadRating"`
	ReceiveLike        int `json:"receiveLike"`
	ReviewReportedPost int `json:"reviewReportedPost"`
	WritePost          int `json:"writePost"`
}

type Announcement struct {
	Text     string     `json:"text"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

// PlatformSettings is the singleton configuration record. It is persisted
// as a single object document, not a collection.
type PlatformSettings struct {
	Points               PointValues  `json:"points"`
	ModeratorShareRatio  float64      `json:"moderatorShareRatio"`
	UserShareRatio       float64      `json:"userShareRatio"`
	ModeratorEmailDomain string       `json:"moderatorEmailDomain"`
	Announcement         Announcement `json:"announcement"`
}

// DefaultPlatformSettings is the seed used when the settings record is
// missing or unparsable.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		Points: PointValues{
			WriteLetter:        10,
			ReplyToLetter:      20,
			ReplyFast:          10,
			GiveGoodRating:     5,
			ReceiveGoodRating:  15,
			ReceiveBadRating:   -10,
			ReceiveLike:        2,
			ReviewReportedPost: 5,
			WritePost:          5,
		},
		ModeratorShareRatio:  0.40,
		UserShareRatio:       0.10,
		ModeratorEmailDomain: "kholachithi.org",
	}
}
