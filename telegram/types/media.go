package types

// PhotoSize is one size of a photo or thumbnail.
type PhotoSize struct {
	FileID       FileID `json:"file_id"`
	FileUniqueID string `json:"file_unique_id,omitempty"`
	Width        int64  `json:"width"`
	Height       int64  `json:"height"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// Audio is an audio file treated as music.
type Audio struct {
	FileID    FileID `json:"file_id"`
	Duration  int64  `json:"duration"`
	Performer string `json:"performer,omitempty"`
	Title     string `json:"title,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	FileSize  int64  `json:"file_size,omitempty"`
}

// Document is a general file.
type Document struct {
	FileID   FileID     `json:"file_id"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileName string     `json:"file_name,omitempty"`
	MimeType string     `json:"mime_type,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Sticker is a sticker.
type Sticker struct {
	FileID     FileID     `json:"file_id"`
	Width      int64      `json:"width"`
	Height     int64      `json:"height"`
	IsAnimated bool       `json:"is_animated,omitempty"`
	Thumb      *PhotoSize `json:"thumb,omitempty"`
	Emoji      string     `json:"emoji,omitempty"`
	SetName    string     `json:"set_name,omitempty"`
	FileSize   int64      `json:"file_size,omitempty"`
}

// Video is a video file.
type Video struct {
	FileID   FileID     `json:"file_id"`
	Width    int64      `json:"width"`
	Height   int64      `json:"height"`
	Duration int64      `json:"duration"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	MimeType string     `json:"mime_type,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Voice is a voice note.
type Voice struct {
	FileID   FileID `json:"file_id"`
	Duration int64  `json:"duration"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// VideoNote is a round video message.
type VideoNote struct {
	FileID   FileID     `json:"file_id"`
	Length   int64      `json:"length"`
	Duration int64      `json:"duration"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Contact is a shared phone contact.
type Contact struct {
	PhoneNumber string  `json:"phone_number"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name,omitempty"`
	UserID      *UserID `json:"user_id,omitempty"`
}

// Location is a point on the map.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Venue is a named location.
type Venue struct {
	Location     Location `json:"location"`
	Title        string   `json:"title"`
	Address      string   `json:"address"`
	FoursquareID string   `json:"foursquare_id,omitempty"`
}

// PollOption is one answer option of a poll.
type PollOption struct {
	Text       string `json:"text"`
	VoterCount int64  `json:"voter_count"`
}

// Poll is a native poll.
type Poll struct {
	ID                    string       `json:"id"`
	Question              string       `json:"question"`
	Options               []PollOption `json:"options"`
	TotalVoterCount       int64        `json:"total_voter_count"`
	IsClosed              bool         `json:"is_closed"`
	IsAnonymous           bool         `json:"is_anonymous"`
	Type                  string       `json:"type"`
	AllowsMultipleAnswers bool         `json:"allows_multiple_answers"`
	CorrectOptionID       *int64       `json:"correct_option_id,omitempty"`
}

// PollAnswer is a user's answer in a non-anonymous poll.
type PollAnswer struct {
	PollID    string  `json:"poll_id"`
	User      User    `json:"user"`
	OptionIDs []int64 `json:"option_ids"`
}

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID       string    `json:"id"`
	From     User      `json:"from"`
	Location *Location `json:"location,omitempty"`
	Query    string    `json:"query"`
	Offset   string    `json:"offset"`
}

// ChosenInlineResult is an inline result chosen by a user.
type ChosenInlineResult struct {
	ResultID        string    `json:"result_id"`
	From            User      `json:"from"`
	Location        *Location `json:"location,omitempty"`
	InlineMessageID string    `json:"inline_message_id,omitempty"`
	Query           string    `json:"query"`
}

// File is a file ready to be downloaded.
type File struct {
	FileID       FileID `json:"file_id"`
	FileUniqueID string `json:"file_unique_id,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	FilePath     string `json:"file_path,omitempty"`
}
