package matcher

import "regexp"

// Property names emitted by the matchers. These are the keys of every
// guess flowing through the merge pipeline.
const (
	PropTitle            = "title"
	PropYear             = "year"
	PropDate             = "date"
	PropSeason           = "season"
	PropEpisode          = "episodeNumber"
	PropFormat           = "format"
	PropScreenSize       = "screenSize"
	PropVideoCodec       = "videoCodec"
	PropAudioCodec       = "audioCodec"
	PropContainer        = "container"
	PropReleaseGroup     = "releaseGroup"
	PropLanguage         = "language"
	PropSubtitleLanguage = "subtitleLanguage"
	PropOther            = "other"
)

// Pattern compilation for release name parsing.
var (
	// Combined season/episode forms: S01E02, s1.e2, 1x02, with optional
	// extra episodes chained on (S01E01E02, S01E01-E03).
	seasonEpisodeRe = regexp.MustCompile(`(?i)\b(?:s(\d{1,2})[\s._-]*e|(\d{1,2})x)(\d{1,3})((?:[-&+]?e?\d{1,3})*)\b`)

	// extraEpisodeRe splits the chained tail of a multi-episode token.
	extraEpisodeRe = regexp.MustCompile(`(?i)[-&+]?e?(\d{1,3})`)

	// Season tokens on their own: "Season 2", "S03", "saison 4".
	seasonRe = regexp.MustCompile(`(?i)\b(?:s|season|saison)\.? *(\d{1,2})\b`)

	// Episode tokens on their own: "Episode 5", "E07", "ep 3".
	episodeRe = regexp.MustCompile(`(?i)\b(?:e|ep|episode)\.? *(\d{1,3})\b`)

	// Year, bounded so codec numbers and resolutions do not match.
	yearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

	// Full date stamps as used by daily shows: 2019.04.28, 2019-04-28.
	dateRe = regexp.MustCompile(`\b((?:19|20)\d{2})[.\-]([01]\d)[.\-]([0-3]\d)\b`)

	// Screen size: 720p/1080i/2160p plus the 4K/UHD aliases.
	screenSizeRe = regexp.MustCompile(`(?i)\b(\d{3,4})[pi]\b|\b(4k|uhd)\b`)

	// Container extension at the very end of the name.
	containerRe = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|mov|wmv|flv|webm|mpg|mpeg|m4v|3gp|vob|ts|m2ts|rmvb|divx|srt|sub|ssa|ass|idx)$`)

	// Release group: trailing "-GROUP" token, optionally before the
	// extension, letters/digits only.
	releaseGroupRe = regexp.MustCompile(`-([A-Za-z0-9]+)$`)

	// Trailing subtitle language code on subtitle files: ".en", ".pt-BR".
	subtitleCodeRe = regexp.MustCompile(`(?i)\.([a-z]{2,3}(?:[-_][a-z]{2})?)$`)

	// VOST tokens mark original audio with burned/bundled subtitles.
	vostRe = regexp.MustCompile(`(?i)\bvost(fr|en|de|es)?\b`)

	// Separators normalized to spaces when cleaning titles.
	separatorRe = regexp.MustCompile(`[\s._]+`)

	// Bracketed chunks and empty bracket pairs left after tag removal.
	bracketsRe = regexp.MustCompile(`[\(\[\{<][^\)\]\}>]*[\)\]\}>]`)

	// allCapsRe flags shouty single-token titles, a release-group smell.
	allCapsRe = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// token tables: canonical value plus the base confidence assigned to a
// match. Keys are matched as whole separator-delimited tokens,
// case-insensitively.

type canonicalToken struct {
	Canonical  string
	Confidence float64
}

var formatTokens = map[string]canonicalToken{
	"bluray":   {"BluRay", 0.9},
	"blu-ray":  {"BluRay", 0.9},
	"bdrip":    {"BluRay", 0.8},
	"brrip":    {"BluRay", 0.8},
	"web-dl":   {"WEB-DL", 0.9},
	"webdl":    {"WEB-DL", 0.9},
	"webrip":   {"WEBRip", 0.9},
	"web":      {"WEB-DL", 0.6},
	"hdtv":     {"HDTV", 0.9},
	"pdtv":     {"HDTV", 0.7},
	"dvdrip":   {"DVD", 0.8},
	"dvd":      {"DVD", 0.8},
	"cam":      {"CAM", 0.6},
	"telesync": {"Telesync", 0.7},
}

var videoCodecTokens = map[string]canonicalToken{
	"x264":  {"H.264", 0.9},
	"h264":  {"H.264", 0.9},
	"h.264": {"H.264", 0.9},
	"avc":   {"H.264", 0.7},
	"x265":  {"H.265", 0.9},
	"h265":  {"H.265", 0.9},
	"h.265": {"H.265", 0.9},
	"hevc":  {"H.265", 0.9},
	"xvid":  {"XviD", 0.9},
	"divx":  {"DivX", 0.8},
	"av1":   {"AV1", 0.9},
}

var audioCodecTokens = map[string]canonicalToken{
	"aac":    {"AAC", 0.8},
	"ac3":    {"AC3", 0.8},
	"dd5":    {"AC3", 0.6},
	"eac3":   {"EAC3", 0.8},
	"dts":    {"DTS", 0.8},
	"dts-hd": {"DTS-HD", 0.9},
	"truehd": {"TrueHD", 0.9},
	"flac":   {"FLAC", 0.9},
	"mp3":    {"MP3", 0.8},
	"opus":   {"Opus", 0.8},
}

var otherTokens = map[string]canonicalToken{
	"proper":     {"Proper", 0.9},
	"repack":     {"Repack", 0.9},
	"rerip":      {"Repack", 0.8},
	"limited":    {"Limited", 0.8},
	"unrated":    {"Unrated", 0.8},
	"uncut":      {"Uncut", 0.8},
	"extended":   {"Extended", 0.8},
	"remastered": {"Remastered", 0.8},
	"internal":   {"Internal", 0.8},
	"complete":   {"Complete", 0.7},
	"multi":      {"Multi", 0.7},
	"hdr":        {"HDR", 0.8},
	"10bit":      {"10bit", 0.8},
	"3d":         {"3D", 0.7},
}

// screenSizeCanonical normalizes resolution aliases.
var screenSizeCanonical = map[string]string{
	"4k":  "2160p",
	"uhd": "2160p",
}

// releaseTokenSet is every token above plus resolution-ish tokens; used to
// reject title candidates and release-group false positives.
var releaseTokenSet = buildReleaseTokenSet()

func buildReleaseTokenSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, table := range []map[string]canonicalToken{formatTokens, videoCodecTokens, audioCodecTokens, otherTokens} {
		for token := range table {
			set[token] = struct{}{}
		}
	}
	for _, token := range []string{"720p", "1080p", "1080i", "2160p", "480p", "4k", "uhd", "sd", "hd"} {
		set[token] = struct{}{}
	}
	return set
}
