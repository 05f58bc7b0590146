// Package urlclass maps profile and bio URLs to semantic site categories.
//
// Classification walks a fixed, ordered rule table: top-level-domain
// heuristics first, then google.com path special cases, then the
// per-category domain membership lists. The first matching rule wins.
package urlclass

import (
	"net/url"
	"sort"
	"strings"
)

// Category labels. Everything that matches no rule is CategoryPersonal;
// empty or unparseable input is CategoryUnavailable.
const (
	CategoryShortLink   = "short_link"
	CategoryPersonal    = "personal/other"
	CategoryUnavailable = "unavailable"
)

type rule struct {
	category string
	domains  []string
}

// rules is tested in this exact order; short links first so that the
// aggregation step can discard them when anything better is present.
var rules = []rule{
	{CategoryShortLink, []string{"t.co", "bit.ly", "tinyurl.", "goo.gl", "ow.ly", "buff.ly", "bitly.com", "rebrand.ly"}},
	{"social", []string{
		"twitter.com", "x.com", "facebook.com", "instagram.com", "tiktok.com",
		"youtube.com", "reddit.com", "linkedin.com", "weibo.com", "zhihu.com",
		"douban.com", "pinterest.com", "snapchat.com", "kakao.com", "vk.com",
		"xiaohongshu.com",
	}},
	{"messaging", []string{
		"whatsapp.com", "wa.me", "t.me", "telegram.me", "telegram.org",
		"weixin.qq.com", "wechat.com", "line.me", "signal.org", "messenger.com",
		"discord.com", "discord.gg", "skype.com",
	}},
	{"forum/community", []string{"discord.com", "discord.gg", "reddit.com", "quora.com", "clubhouse.com"}},
	{"qa", []string{"stackoverflow.com", "stackexchange.com", "superuser.com", "serverfault.com", "askubuntu.com", "quora.com"}},
	{"video/streaming", []string{"twitch.tv", "vimeo.com", "dailymotion.com", "bilibili.com", "youku.com", "douyin.com", "netflix.com"}},
	{"music/audio", []string{"spotify.com", "soundcloud.com", "bandcamp.com", "music.apple.com", "podcasts.apple.com", "anchor.fm"}},
	{"blog/writing", []string{
		"medium.com", "substack.com", "wordpress.com", "wordpress.org", "blogspot.com",
		"tumblr.com", "hashnode.com", "dev.to", "mirror.xyz", "ghost.org", "notion.site", "notion.so",
	}},
	{"news", []string{
		"nytimes.com", "washingtonpost.com", "wsj.com", "theguardian.com", "apnews.com",
		"npr.org", "bbc.co.uk", "bbc.com", "aljazeera.com", "bloomberg.com", "reuters.com",
		"ft.com", "forbes.com", "time.com", "latimes.com", "foxnews.com", "cnbc.com",
		"nbcnews.com", "abcnews.go.com", "news.yahoo.com", "techcrunch.com", "wired.com", "theverge.com", "engadget.com",
	}},
	{"encyclopedia", []string{"wikipedia.org", "wikidata.org", "baike.baidu.com", "britannica.com"}},
	{"education/research", []string{
		"arxiv.org", "acm.org", "ieee.org", "nature.com", "science.org", "springer.com",
		"sciencedirect.com", "ssrn.com", "researchgate.net",
	}},
	{"gov/ngo", []string{"un.org", "who.int", "oecd.org", "worldbank.org", "imf.org", "europa.eu"}},
	{"finance", []string{
		"paypal.com", "paypal.me", "venmo.com", "cash.app", "stripe.com",
		"coinbase.com", "binance.com", "kraken.com", "opensea.io",
	}},
	{"ecommerce", []string{
		"amazon.", "ebay.", "aliexpress.", "taobao.", "tmall.", "shopify", "etsy.",
		"jd.com", "pinduoduo.com", "mercadolibre.com", "rakuten.co.jp", "shopee.",
	}},
	{"job/career", []string{"linkedin.com", "indeed.com", "glassdoor.com", "lever.co", "greenhouse.io"}},
	{"image/hosting", []string{"imgur.com", "flickr.com", "pixiv.net", "deviantart.com", "500px.com", "smugmug.com"}},
	{"file/cloud", []string{
		"drive.google.com", "docs.google.com", "dropbox.com", "box.com", "mega.nz",
		"onedrive.live.com", "mediafire.com", "icloud.com",
	}},
	{"dev/code", []string{
		"github.com", "gist.github.com", "gitlab.com", "bitbucket.org", "pypi.org",
		"npmjs.com", "crates.io", "huggingface.co", "kaggle.com", "colab.research.google.com",
	}},
	{"maps/nav", []string{"maps.google.com", "goo.gl/maps", "openstreetmap.org", "map.baidu.com", "waze.com"}},
	{"forms/surveys", []string{"forms.gle", "docs.google.com", "typeform.com", "surveymonkey.com", "jinshuju.net", "wj.qq.com"}},
	{"app_store", []string{"apps.apple.com", "itunes.apple.com", "play.google.com", "appgallery.huawei.com", "apkpure.com"}},
	{"sports", []string{"espn.com", "nba.com", "fifa.com", "uefa.com", "mlb.com", "nhl.com"}},
	{"link_aggregator", []string{"linktr.ee", "bio.link", "about.me", "carrd.co", "beacons.ai", "tap.bio", "lnk.bio", "allmylinks.com", "solo.to"}},
}

// tiePriority breaks equal vote counts during aggregation. Categories not
// listed here sort after all of these, in first-seen order.
var tiePriority = []string{
	"social", "news", "encyclopedia", "blog/writing", "ecommerce",
	CategoryPersonal, CategoryShortLink, CategoryUnavailable,
}

var absentValues = map[string]bool{"": true, "nan": true, "none": true, "null": true}

// NormalizeHost lowercases the authority and strips the common mobile and
// AMP subdomain prefixes.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	for _, p := range []string{"www.", "m.", "mobile.", "amp."} {
		if strings.HasPrefix(host, p) {
			host = host[len(p):]
		}
	}
	return host
}

// hostIs reports whether host equals domain or is a subdomain of it.
func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// matchAny supports both full domains (github.com) and prefix entries
// ending in a dot (amazon., shopee.), which match as substrings so
// country-specific storefronts classify too.
func matchAny(host string, domains []string) bool {
	for _, d := range domains {
		if strings.HasSuffix(d, ".") && strings.Contains(host, d) {
			return true
		}
		if hostIs(host, strings.TrimSuffix(d, ".")) {
			return true
		}
	}
	return false
}

// Category classifies a single URL string into one domain category.
func Category(urlStr string) string {
	raw := strings.TrimSpace(urlStr)
	if absentValues[strings.ToLower(raw)] {
		return CategoryUnavailable
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return CategoryUnavailable
	}
	host := NormalizeHost(u.Host)
	path := strings.ToLower(u.Path)
	if host == "" {
		return CategoryUnavailable
	}

	// Top-level-domain heuristics beat the membership lists.
	if strings.HasSuffix(host, ".gov") || hostIs(host, "gov.uk") {
		return "gov/ngo"
	}
	if strings.HasSuffix(host, ".edu") {
		return "education/research"
	}

	// Path-based special cases under google.com.
	if hostIs(host, "google.com") {
		switch {
		case strings.HasPrefix(path, "/maps"):
			return "maps/nav"
		case strings.HasPrefix(path, "/forms") || strings.Contains(path, "/forms/"):
			return "forms/surveys"
		case strings.HasPrefix(path, "/drive") || strings.HasPrefix(path, "/file") ||
			strings.HasPrefix(path, "/doc") || hostIs(host, "docs.google.com"):
			return "file/cloud"
		}
	}

	for _, r := range rules {
		if matchAny(host, r.domains) {
			return r.category
		}
	}
	return CategoryPersonal
}

// ExtractURLs pulls candidate URL strings out of a polymorphic entity
// value: a list of URL objects, a single URL object, or a bare string.
// URL objects prefer expanded_url, then url, then display_url; a chosen
// value without a scheme gets an http:// prefix.
func ExtractURLs(entity any) []string {
	var out []string
	switch v := entity.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range v {
			switch obj := item.(type) {
			case map[string]any:
				if u := pickURL(obj); u != "" {
					out = append(out, u)
				}
			case string:
				if obj != "" {
					out = append(out, obj)
				}
			}
		}
	case map[string]any:
		if u := pickURL(v); u != "" {
			out = append(out, u)
		}
	case string:
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func pickURL(obj map[string]any) string {
	for _, key := range []string{"expanded_url", "url", "display_url"} {
		if s, ok := obj[key].(string); ok && s != "" {
			if !strings.Contains(s, "://") {
				s = "http://" + s
			}
			return s
		}
	}
	return ""
}

// EntityPresent reports whether an entity value holds anything at all.
func EntityPresent(entity any) bool {
	switch v := entity.(type) {
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case string:
		return v != ""
	}
	return false
}

// Categories classifies every URL in the entity and returns the full
// category ranking: vote counts descending, ties broken by tiePriority.
// When any non-short-link category got a vote, short_link votes are
// discarded entirely. An empty entity yields ["unavailable"].
func Categories(entity any) []string {
	urls := ExtractURLs(entity)
	if len(urls) == 0 {
		return []string{CategoryUnavailable}
	}

	counts := make(map[string]int)
	var order []string // first-seen order, keeps the sort stable
	for _, u := range urls {
		cat := Category(u)
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	hasNonShort := false
	for cat := range counts {
		if cat != CategoryShortLink {
			hasNonShort = true
			break
		}
	}
	if hasNonShort {
		delete(counts, CategoryShortLink)
	}

	cats := make([]string, 0, len(counts))
	for _, cat := range order {
		if _, ok := counts[cat]; ok {
			cats = append(cats, cat)
		}
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return priorityIndex(cats[i]) < priorityIndex(cats[j])
	})
	return cats
}

func priorityIndex(cat string) int {
	for i, p := range tiePriority {
		if p == cat {
			return i
		}
	}
	return len(tiePriority)
}
