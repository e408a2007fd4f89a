// Package iiif holds the IIIF Presentation API v3 document elements emitted
// by the builder. Documents are assembled per request and discarded after
// serialization: ownership runs strictly downward (Collection/Manifest owns
// Canvas owns AnnotationPage owns Annotation owns Resource); the Annotation
// carries its Canvas id only to serialize the target field.
package iiif

// ContextV3 is the Presentation API version marker set on top-level documents.
const ContextV3 = "http://iiif.io/api/presentation/3/context.json"

// Metadata is one label/values entry of a document's metadata list.
type Metadata struct {
	Label string   `json:"label"`
	Value []string `json:"value"`
}

// Ref is a typed, labelled reference to another document.
type Ref struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// Link is a homepage or seeAlso entry.
type Link struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Label   string `json:"label,omitempty"`
	Format  string `json:"format,omitempty"`
	Profile string `json:"profile,omitempty"`
}

// Base carries the fields shared by Collection and Manifest.
type Base struct {
	Context     string      `json:"@context,omitempty"`
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Label       string      `json:"label,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Metadata    []Metadata  `json:"metadata,omitempty"`
	Homepage    []Link      `json:"homepage,omitempty"`
	SeeAlso     []Link      `json:"seeAlso,omitempty"`
	Thumbnail   []*Resource `json:"thumbnail,omitempty"`
	Logo        []*Resource `json:"logo,omitempty"`
	Attribution string      `json:"attribution,omitempty"`
	PartOf      []Ref       `json:"partOf,omitempty"`
}

// SetContext marks the document as a Presentation API v3 document.
func (b *Base) SetContext() {
	b.Context = ContextV3
}

func (b *Base) SetSummary(summary string) {
	b.Summary = summary
}

// AddMetadata appends an entry; entries are never overwritten, so the order
// of calls is the order of the serialized list.
func (b *Base) AddMetadata(label string, values ...string) {
	b.Metadata = append(b.Metadata, Metadata{Label: label, Value: values})
}

func (b *Base) SetHomepage(homepage []Link) {
	b.Homepage = homepage
}

func (b *Base) AddSeeAlso(links ...Link) {
	b.SeeAlso = append(b.SeeAlso, links...)
}

func (b *Base) SetThumbnail(resource *Resource) {
	b.Thumbnail = []*Resource{resource}
}

func (b *Base) SetLogo(resource *Resource) {
	b.Logo = []*Resource{resource}
}

func (b *Base) SetAttribution(attribution string) {
	b.Attribution = attribution
}

// SetParent links the document to its parent.
func (b *Base) SetParent(id, typ, label string) {
	b.PartOf = []Ref{{ID: id, Type: typ, Label: label}}
}

// Collection groups manifests and sub-collections. Items holds *Collection
// and *Manifest values, typically in their minimal (stub) form.
type Collection struct {
	Base
	Items []any `json:"items,omitempty"`
}

// NewCollection returns a collection stub with only id and label.
func NewCollection(id, label string) *Collection {
	return &Collection{Base: Base{ID: id, Type: "Collection", Label: label}}
}

func (c *Collection) AddCollection(sub *Collection) {
	c.Items = append(c.Items, sub)
}

func (c *Collection) AddManifest(m *Manifest) {
	c.Items = append(c.Items, m)
}

// Manifest describes a single object as a sequence of canvases.
type Manifest struct {
	Base
	Items []*Canvas `json:"items,omitempty"`
}

// NewManifest returns a manifest stub with only id and label.
func NewManifest(id, label string) *Manifest {
	return &Manifest{Base: Base{ID: id, Type: "Manifest", Label: label}}
}

func (m *Manifest) AddCanvas(canvas *Canvas) {
	m.Items = append(m.Items, canvas)
}

// Canvas is a single surface, sized by pixels or by duration.
type Canvas struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Width    int               `json:"width,omitempty"`
	Height   int               `json:"height,omitempty"`
	Duration float64           `json:"duration,omitempty"`
	Items    []*AnnotationPage `json:"items,omitempty"`
}

func NewCanvas(id string, width, height int, duration float64) *Canvas {
	return &Canvas{ID: id, Type: "Canvas", Width: width, Height: height, Duration: duration}
}

func (c *Canvas) SetItems(page *AnnotationPage) {
	c.Items = []*AnnotationPage{page}
}

// AnnotationPage holds the annotations painted onto a canvas.
type AnnotationPage struct {
	ID    string        `json:"id"`
	Type  string        `json:"type"`
	Items []*Annotation `json:"items,omitempty"`
}

func NewAnnotationPage(id string) *AnnotationPage {
	return &AnnotationPage{ID: id, Type: "AnnotationPage"}
}

func (p *AnnotationPage) SetItems(annotation *Annotation) {
	p.Items = []*Annotation{annotation}
}

// Annotation binds a content resource to a canvas.
type Annotation struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Motivation string    `json:"motivation"`
	Body       *Resource `json:"body"`
	Target     string    `json:"target,omitempty"`
	SeeAlso    []Link    `json:"seeAlso,omitempty"`
}

func NewAnnotation(id string, body *Resource) *Annotation {
	return &Annotation{ID: id, Type: "Annotation", Motivation: "painting", Body: body}
}

// SetCanvas records the owning canvas id as the annotation target. The
// annotation never navigates back through it.
func (a *Annotation) SetCanvas(canvas *Canvas) {
	a.Target = canvas.ID
}

func (a *Annotation) AddSeeAlso(link Link) {
	a.SeeAlso = append(a.SeeAlso, link)
}

// Resource is the content of an annotation or a thumbnail/logo slot.
type Resource struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Format   string   `json:"format,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Duration float64  `json:"duration,omitempty"`
	Service  *Service `json:"service,omitempty"`
}

func NewResource(id, typ, format string, width, height int, duration float64) *Resource {
	return &Resource{ID: id, Type: typ, Format: format, Width: width, Height: height, Duration: duration}
}

func (r *Resource) SetService(service *Service) {
	r.Service = service
}

// Service describes the Image API endpoint able to serve a resource.
type Service struct {
	ID         string `json:"id"`
	Profile    string `json:"profile"`
	ConformsTo string `json:"conformsTo,omitempty"`
}

// ImageServiceProfile is the level-2 profile of the version-2 Image API.
const ImageServiceProfile = "http://iiif.io/api/image/2/level2.json"

// NewImageService returns a level-2, version-2 Image API service descriptor.
func NewImageService(id string) *Service {
	return &Service{ID: id, Profile: ImageServiceProfile, ConformsTo: "image/2/level2"}
}
