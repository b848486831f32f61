package opensubtitlescom

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// flexInt decodes a JSON value that the API serves either as a number or as
// a quoted string, depending on the endpoint.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type searchResponse struct {
	Data []titleResult `json:"data"`
}

type titleResult struct {
	ID         string `json:"id"`
	Attributes struct {
		Title string  `json:"title"`
		Year  flexInt `json:"year"`
	} `json:"attributes"`
}

type findResponse struct {
	Data []findResult `json:"data"`
}

type findResult struct {
	Type       string             `json:"type"`
	Attributes subtitleAttributes `json:"attributes"`
}

type subtitleAttributes struct {
	Language        string         `json:"language"`
	HearingImpaired bool           `json:"hearing_impaired"`
	URL             string         `json:"url"`
	Release         string         `json:"release"`
	Files           []subtitleFile `json:"files"`
	Uploader        struct {
		Name string `json:"name"`
	} `json:"uploader"`
	FeatureDetails struct {
		MovieName     string `json:"movie_name"`
		SeasonNumber  int    `json:"season_number"`
		EpisodeNumber int    `json:"episode_number"`
	} `json:"feature_details"`
}

type subtitleFile struct {
	ID int64 `json:"id"`
}

type downloadRequest struct {
	FileID int64 `json:"file_id"`
}

type downloadResponse struct {
	Link string `json:"link"`
}

// compile-time check that flexInt participates in JSON decoding
var _ json.Unmarshaler = (*flexInt)(nil)
