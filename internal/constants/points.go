package constants

// PointEvent identifies the action behind a point award in a moderator's
// monthly detail log.
type PointEvent string

const (
	PointEventWriteLetter        PointEvent = "write_letter"
	PointEventReplyToLetter      PointEvent = "reply_to_letter"
	PointEventReplyFast          PointEvent = "reply_fast"
	PointEventGiveGoodRating     PointEvent = "give_good_rating"
	PointEventReceiveGoodRating  PointEvent = "receive_good_rating"
	PointEventReceiveBadRating   PointEvent = "receive_bad_rating"
	PointEventReceiveLike        PointEvent = "receive_like"
	PointEventReviewReportedPost PointEvent = "review_reported_post"
	PointEventWritePost          PointEvent = "write_post"
)

func (e PointEvent) String() string { return string(e) }
