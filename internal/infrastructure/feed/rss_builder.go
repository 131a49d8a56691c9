package feed

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

var _ usecase.CatalogFeedBuilder = (*RSSBuilder)(nil)

const googleNS = "http://base.google.com/ns/1.0"

// RSSBuilder arma el feed de catálogo en RSS 2.0 con el namespace g: de Merchant Center.
type RSSBuilder struct {
	title   string
	baseURL string
}

// NewRSSBuilder construye el builder; baseURL se usa para links absolutos.
func NewRSSBuilder(title, baseURL string) *RSSBuilder {
	return &RSSBuilder{title: title, baseURL: strings.TrimRight(baseURL, "/")}
}

// Build serializa los productos.
func (b *RSSBuilder) Build(products []*entity.Product) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", googleNS)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(b.title)
	channel.CreateElement("link").SetText(b.baseURL)
	channel.CreateElement("description").SetText("Catálogo de productos de " + b.title)

	for _, p := range products {
		item := channel.CreateElement("item")
		item.CreateElement("g:id").SetText(p.ID)
		item.CreateElement("g:title").SetText(p.Name)
		item.CreateElement("g:description").SetText(p.Description)
		item.CreateElement("g:link").SetText(b.baseURL + "/products/" + p.ID)
		item.CreateElement("g:image_link").SetText(b.absolute(p.Image))
		for _, img := range p.Images {
			if img != p.Image {
				item.CreateElement("g:additional_image_link").SetText(b.absolute(img))
			}
		}
		item.CreateElement("g:price").SetText(fmt.Sprintf("%s %s", p.Price.StringFixed(2), p.Currency))
		item.CreateElement("g:availability").SetText(availability(p))
		item.CreateElement("g:product_type").SetText(p.Category)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func (b *RSSBuilder) absolute(u string) string {
	if strings.HasPrefix(u, "/") {
		return b.baseURL + u
	}
	return u
}

func availability(p *entity.Product) string {
	if p.InStock && p.Stock > 0 {
		return "in_stock"
	}
	return "out_of_stock"
}
