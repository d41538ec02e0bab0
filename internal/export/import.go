package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"inksearch/internal/domain"
	"inksearch/internal/repository"
)

type ImportStats struct {
	Imported int
	Skipped  int
}

type Importer struct {
	artistRepo repository.ArtistRepository
}

func NewImporter(artistRepo repository.ArtistRepository) *Importer {
	return &Importer{artistRepo: artistRepo}
}

// ImportCatalog reads either a catalogue file or a bare JSON array of
// artists and stores each one by slug.
func (i *Importer) ImportCatalog(ctx context.Context, r io.Reader, strategy ConflictStrategy) (ImportStats, error) {
	var stats ImportStats

	artists, err := decodeCatalog(r)
	if err != nil {
		return stats, err
	}

	for n, data := range artists {
		if data == nil {
			continue
		}

		artist := data.toArtist()
		if artist.Slug == "" {
			artist.Slug = domain.Slugify(artist.Name)
		}

		if strategy == ConflictStrategySkip && artist.Slug != "" {
			if _, err := i.artistRepo.GetBySlug(ctx, artist.Slug); err == nil {
				stats.Skipped++
				continue
			}
		}

		if err := i.artistRepo.Upsert(ctx, artist); err != nil {
			return stats, fmt.Errorf("failed to import artist %d (%s): %w", n+1, data.Name, err)
		}
		stats.Imported++
	}

	return stats, nil
}

func decodeCatalog(r io.Reader) ([]*ArtistData, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	decoder := json.NewDecoder(br)

	if first == '[' {
		var artists []*ArtistData
		if err := decoder.Decode(&artists); err != nil {
			return nil, fmt.Errorf("failed to decode catalogue: %w", err)
		}
		return artists, nil
	}

	var file CatalogFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	if file.Artists == nil {
		return nil, fmt.Errorf("no artists in catalogue")
	}
	return file.Artists, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsAny(b, " \t\r\n") {
			return b[0], nil
		}
		if _, err := br.ReadByte(); err != nil {
			return 0, err
		}
	}
}
