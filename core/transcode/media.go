package transcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/LaffeyOvO/notesnook/core/dataurl"
	"github.com/LaffeyOvO/notesnook/core/markup"
	"github.com/LaffeyOvO/notesnook/link"
)

// ResolveMedia points every hashed image at a URL from resolver. The
// resolver is called once with the distinct hashes, and not at all when the
// note has no hashed images. Images whose hash does not resolve keep their
// current src. A resolver error aborts the whole operation.
func (c *Content) ResolveMedia(ctx context.Context, resolver core.MediaResolver) (string, error) {
	var hashes hashList
	markup.Scan(c.data, func(tag string, attrs *markup.Attributes, _ markup.Position) {
		if tag == "img" {
			hashes.add(attrs.Get(core.AttrHash))
		}
	})
	if len(hashes.items) == 0 {
		return c.data, nil
	}

	sources, err := resolver.Resolve(ctx, hashes.items)
	if err != nil {
		return "", fmt.Errorf("resolving media: %w", err)
	}

	return markup.Rewrite(c.data, func(tag string, attrs *markup.Attributes, _ markup.Position) markup.Verdict {
		if tag != "img" {
			return markup.Keep
		}
		hash := attrs.Get(core.AttrHash)
		if hash == "" {
			return markup.Keep
		}
		if src := sources[hash]; src != "" {
			attrs.Set(core.AttrSrc, src)
		}
		return markup.Keep
	}), nil
}

// inlineImage is an <img> whose content is still embedded in its src.
type inlineImage struct {
	pos      markup.Position
	src      string
	filename string
}

// PostProcess externalizes inline images and collects attachment hashes and
// internal links.
//
// Images with a src but no hash are decoded and handed to saver one at a
// time, in document order. An image that fails to decode or save is logged
// and left as it was; the rest are still processed. Afterwards every img,
// iframe and span that carries a hash keeps the hash and loses its src, and
// its hash is listed once per tag in document order.
func (c *Content) PostProcess(ctx context.Context, saver core.AttachmentSaver) (*core.PostProcessResult, error) {
	if !strings.Contains(c.data, core.AttrSrc) &&
		!strings.Contains(c.data, core.AttrHash) &&
		!strings.Contains(c.data, core.InternalLinkScheme) {
		return &core.PostProcessResult{
			Data:          c.data,
			Hashes:        []string{},
			InternalLinks: []core.InternalLink{},
		}, nil
	}

	var images []inlineImage
	links := []core.InternalLink{}
	markup.Scan(c.data, func(tag string, attrs *markup.Attributes, pos markup.Position) {
		switch tag {
		case "img":
			src := attrs.Get(core.AttrSrc)
			if attrs.Get(core.AttrHash) == "" && src != "" {
				images = append(images, inlineImage{
					pos:      pos,
					src:      src,
					filename: attrs.Get(core.AttrFilename),
				})
			}
		case "a":
			if l, ok := link.Parse(attrs.Get(core.AttrHref)); ok {
				links = append(links, l)
			}
		}
	})

	saved := make(map[markup.Position]string, len(images))
	failed := make(map[markup.Position]bool)
	for _, img := range images {
		hash, err := c.save(ctx, saver, img)
		switch {
		case errors.Is(err, dataurl.ErrNotDataURL):
			c.logger.Debug("skipping non-embedded image", "pos", img.pos.Start)
		case err != nil:
			c.logger.Warn("failed to externalize image", "pos", img.pos.Start, "error", err)
			failed[img.pos] = true
		case hash == "":
			c.logger.Warn("attachment was not stored", "pos", img.pos.Start)
			failed[img.pos] = true
		default:
			saved[img.pos] = hash
		}
	}

	hashes := []string{}
	data := markup.Rewrite(c.data, func(tag string, attrs *markup.Attributes, pos markup.Position) markup.Verdict {
		if !isMediaTag(tag) {
			return markup.Keep
		}
		if hash := attrs.Get(core.AttrHash); hash != "" {
			hashes = append(hashes, hash)
			attrs.Delete(core.AttrSrc)
			return markup.Keep
		}
		if tag != "img" || failed[pos] {
			return markup.Keep
		}
		if hash, ok := saved[pos]; ok {
			hashes = append(hashes, hash)
			attrs.Set(core.AttrHash, hash)
			attrs.Delete(core.AttrSrc)
		}
		return markup.Keep
	})

	return &core.PostProcessResult{
		Data:          data,
		Hashes:        hashes,
		InternalLinks: links,
	}, nil
}

// save decodes one inline image and stores it.
func (c *Content) save(ctx context.Context, saver core.AttachmentSaver, img inlineImage) (string, error) {
	d, err := dataurl.Decode(img.src)
	if err != nil {
		return "", err
	}
	if len(d.Data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	hash, err := saver.Save(ctx, d.Data, d.MimeType, img.filename)
	if err != nil {
		return "", fmt.Errorf("saving attachment: %w", err)
	}
	return hash, nil
}
