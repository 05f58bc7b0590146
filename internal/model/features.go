package model

// ProfileFeatures is the fixed per-user feature schema. Tri-state booleans
// use *bool so an unresolved value serializes as null; the plain booleans
// are always resolved.
type ProfileFeatures struct {
	FollowersCount  int `json:"followers_count"`
	FriendsCount    int `json:"friends_count"`
	StatusesCount   int `json:"statuses_count"`
	FavouritesCount int `json:"favourites_count"`
	ListedCount     int `json:"listed_count"`

	Verified            *bool `json:"verified"`
	Protected           *bool `json:"protected"`
	DefaultProfileImage *bool `json:"default_profile_image"`
	DefaultProfile      *bool `json:"default_profile"`
	GeoEnabled          *bool `json:"geo_enabled"`

	LangHint  string `json:"lang_hint"`
	CreatedAt any    `json:"created_at"` // passed through unparsed

	LocationPresent           bool `json:"location_present"`
	ProfileBannerURLPresent   bool `json:"profile_banner_url_present"`
	ProfileUseBackgroundImage bool `json:"profile_use_background_image"`
	ProfileBackgroundTile     bool `json:"profile_background_tile"`
	TimeZonePresent           bool `json:"time_zone_present"`
	UTCOffsetPresent          bool `json:"utc_offset_present"`

	FFRatio               float64  `json:"ff_ratio"`
	DescLength            int      `json:"desc_length"`
	EmojiCount            int      `json:"emoji_count"`
	HasURLInDesc          bool     `json:"has_url_in_desc"`
	HasMentionInDesc      bool     `json:"has_mention_in_desc"`
	HasHashtagInDesc      bool     `json:"has_hashtag_in_desc"`
	HasEmailInDesc        bool     `json:"has_email_in_desc"`
	HasPhoneInDesc        bool     `json:"has_phone_in_desc"`
	HasPromoKeywordInDesc bool     `json:"has_promo_keyword_in_desc"`
	URLCategoryDesc       []string `json:"url_category_desc"`
	HasURLInBio           bool     `json:"has_url_in_bio"`
	URLCategoryBio        []string `json:"url_category_bio"`

	NameLength                int     `json:"name_length"`
	NameDigitRatio            float64 `json:"name_digit_ratio"`
	NameSpecialCharRatio      float64 `json:"name_special_char_ratio"`
	ScreenNameLength          int     `json:"screen_name_length"`
	ScreenNameDigitRatio      float64 `json:"screen_name_digit_ratio"`
	ScreenNameUnderscoreRatio float64 `json:"screen_name_underscore_ratio"`
	NameScreenNameSimilarity  float64 `json:"name_screen_name_similarity"`

	LangTimezoneMismatch bool `json:"lang_timezone_mismatch"`
	LocationGenericFlag  bool `json:"location_generic_flag"`
}

// ProfileMissing is the parallel missingness record. The per-field
// predicates deliberately conflate "source field absent" with "computed
// value is zero/false/empty"; downstream consumers depend on that.
type ProfileMissing struct {
	FollowersCount  bool `json:"followers_count_missing"`
	FriendsCount    bool `json:"friends_count_missing"`
	StatusesCount   bool `json:"statuses_count_missing"`
	FavouritesCount bool `json:"favourites_count_missing"`
	ListedCount     bool `json:"listed_count_missing"`
	FFRatio         bool `json:"ff_ratio_missing"`

	Verified            bool `json:"verified_missing"`
	Protected           bool `json:"protected_missing"`
	DefaultProfileImage bool `json:"default_profile_image_missing"`
	DefaultProfile      bool `json:"default_profile_missing"`
	GeoEnabled          bool `json:"geo_enabled_missing"`

	DescLength            bool `json:"desc_length_missing"`
	EmojiCount            bool `json:"emoji_count_missing"`
	HasURLInDesc          bool `json:"has_url_in_desc_missing"`
	HasMentionInDesc      bool `json:"has_mention_in_desc_missing"`
	HasHashtagInDesc      bool `json:"has_hashtag_in_desc_missing"`
	HasEmailInDesc        bool `json:"has_email_in_desc_missing"`
	HasPhoneInDesc        bool `json:"has_phone_in_desc_missing"`
	HasPromoKeywordInDesc bool `json:"has_promo_keyword_in_desc_missing"`
	URLCategoryDesc       bool `json:"url_category_desc_missing"`

	HasURLInBio    bool `json:"has_url_in_bio_missing"`
	URLCategoryBio bool `json:"url_category_bio_missing"`
	LangHint       bool `json:"lang_hint_missing"`
	CreatedAt      bool `json:"created_at_missing"`

	NameLength                bool `json:"name_length_missing"`
	NameDigitRatio            bool `json:"name_digit_ratio_missing"`
	NameSpecialCharRatio      bool `json:"name_special_char_ratio_missing"`
	ScreenNameLength          bool `json:"screen_name_length_missing"`
	ScreenNameDigitRatio      bool `json:"screen_name_digit_ratio_missing"`
	ScreenNameUnderscoreRatio bool `json:"screen_name_underscore_ratio_missing"`
	NameScreenNameSimilarity  bool `json:"name_screen_name_similarity_missing"`

	LocationPresent           bool `json:"location_present_missing"`
	ProfileBannerURLPresent   bool `json:"profile_banner_url_present_missing"`
	ProfileUseBackgroundImage bool `json:"profile_use_background_image_missing"`
	ProfileBackgroundTile     bool `json:"profile_background_tile_missing"`
	TimeZonePresent           bool `json:"time_zone_present_missing"`
	UTCOffsetPresent          bool `json:"utc_offset_present_missing"`
	LangTimezoneMismatch      bool `json:"lang_timezone_mismatch_missing"`
	LocationGenericFlag       bool `json:"location_generic_flag_missing"`
}

// TweetEvent is one extracted tweet. Time fields are nil when the
// timestamp could not be parsed.
type TweetEvent struct {
	TweetID       string   `json:"tweet_id"`
	CreatedAtISO  *string  `json:"created_at_iso"`
	HourOfDay     *int     `json:"hour_of_day"`
	DayOfWeek     *string  `json:"day_of_week"`
	ClientSource  string   `json:"client_source"`
	IsRetweet     bool     `json:"is_retweet"`
	IsReply       bool     `json:"is_reply"`
	LenChars      int      `json:"len_chars"`
	NumHashtags   int      `json:"num_hashtags"`
	NumURLs       int      `json:"num_urls"`
	NumMentions   int      `json:"num_mentions"`
	RetweetCount  int      `json:"retweet_count"`
	ReplyCount    int      `json:"reply_count"`
	FavoriteCount int      `json:"favorite_count"`
	URLs          []string `json:"urls"`
	URLDomains    []string `json:"url_domains"`
	Text          string   `json:"text,omitempty"`
}

// UserOutput is the per-user value in the keyed output JSON.
type UserOutput struct {
	ProfileFeatures        *ProfileFeatures `json:"profile_features,omitempty"`
	ProfileFeaturesMissing *ProfileMissing  `json:"profile_features_missing,omitempty"`
	TweetEvents            []*TweetEvent    `json:"tweet_events,omitempty"`
	Label                  string           `json:"label,omitempty"`
	Dataset                string           `json:"dataset,omitempty"`
}
