package pronom

// FormatInfo describes a file format from the PRONOM registry.
type FormatInfo struct {
	PUID      string
	Label     string
	MIME      string
	Extension string
}

// formats holds the subset of the PRONOM registry seen in ingested
// collections. The table is read-only after process start.
var formats = map[string]FormatInfo{
	"fmt/3":     {Label: "Graphics Interchange Format 87a", MIME: "image/gif", Extension: "gif"},
	"fmt/4":     {Label: "Graphics Interchange Format 89a", MIME: "image/gif", Extension: "gif"},
	"fmt/11":    {Label: "Portable Network Graphics 1.0", MIME: "image/png", Extension: "png"},
	"fmt/12":    {Label: "Portable Network Graphics 1.1", MIME: "image/png", Extension: "png"},
	"fmt/13":    {Label: "Portable Network Graphics 1.2", MIME: "image/png", Extension: "png"},
	"fmt/42":    {Label: "JPEG File Interchange Format 1.00", MIME: "image/jpeg", Extension: "jpg"},
	"fmt/43":    {Label: "JPEG File Interchange Format 1.01", MIME: "image/jpeg", Extension: "jpg"},
	"fmt/44":    {Label: "JPEG File Interchange Format 1.02", MIME: "image/jpeg", Extension: "jpg"},
	"fmt/353":   {Label: "Tagged Image File Format", MIME: "image/tiff", Extension: "tif"},
	"x-fmt/392": {Label: "JP2 (JPEG 2000 part 1)", MIME: "image/jp2", Extension: "jp2"},
	"fmt/14":    {Label: "Acrobat PDF 1.0", MIME: "application/pdf", Extension: "pdf"},
	"fmt/15":    {Label: "Acrobat PDF 1.1", MIME: "application/pdf", Extension: "pdf"},
	"fmt/16":    {Label: "Acrobat PDF 1.2", MIME: "application/pdf", Extension: "pdf"},
	"fmt/17":    {Label: "Acrobat PDF 1.3", MIME: "application/pdf", Extension: "pdf"},
	"fmt/18":    {Label: "Acrobat PDF 1.4", MIME: "application/pdf", Extension: "pdf"},
	"fmt/19":    {Label: "Acrobat PDF 1.5", MIME: "application/pdf", Extension: "pdf"},
	"fmt/20":    {Label: "Acrobat PDF 1.6", MIME: "application/pdf", Extension: "pdf"},
	"fmt/276":   {Label: "Acrobat PDF 1.7", MIME: "application/pdf", Extension: "pdf"},
	"fmt/6":     {Label: "Waveform Audio", MIME: "audio/x-wav", Extension: "wav"},
	"fmt/134":   {Label: "MPEG 1/2 Audio Layer 3", MIME: "audio/mpeg", Extension: "mp3"},
	"fmt/203":   {Label: "Ogg Vorbis Codec Compressed Multimedia File", MIME: "audio/ogg", Extension: "ogg"},
	"fmt/199":   {Label: "MPEG-4 Media File", MIME: "video/mp4", Extension: "mp4"},
	"fmt/569":   {Label: "Matroska", MIME: "video/x-matroska", Extension: "mkv"},
	"fmt/5":     {Label: "Audio/Video Interleaved Format", MIME: "video/x-msvideo", Extension: "avi"},
	"x-fmt/111": {Label: "Plain Text File", MIME: "text/plain", Extension: "txt"},
	"x-fmt/18":  {Label: "Comma Separated Values", MIME: "text/csv", Extension: "csv"},
	"fmt/101":   {Label: "Extensible Markup Language 1.0", MIME: "text/xml", Extension: "xml"},
	"fmt/40":    {Label: "Microsoft Word Document 97-2003", MIME: "application/msword", Extension: "doc"},
	"fmt/412":   {Label: "Microsoft Word for Windows", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Extension: "docx"},
	"fmt/61":    {Label: "Microsoft Excel 97 Workbook", MIME: "application/vnd.ms-excel", Extension: "xls"},
	"fmt/214":   {Label: "Microsoft Excel for Windows", MIME: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Extension: "xlsx"},
	"x-fmt/263": {Label: "ZIP Format", MIME: "application/zip", Extension: "zip"},
}

// Lookup resolves a PUID to its format information. A miss yields nil,
// never an error.
func Lookup(puid string) *FormatInfo {
	info, ok := formats[puid]
	if !ok {
		return nil
	}
	info.PUID = puid
	return &info
}
