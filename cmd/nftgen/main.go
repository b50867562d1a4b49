// nftgen renders a single token to disk without starting the HTTP service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"basemint-backend/internal/generator"
	"basemint-backend/pkg/logger"
)

type options struct {
	tokenID  string
	out      string
	metadata string
	texture  string
}

func main() {
	var opts options
	flag.StringVar(&opts.tokenID, "id", "", "token id（正整数）")
	flag.StringVar(&opts.out, "out", "", "PNG 输出路径，默认 token-<id>.png")
	flag.StringVar(&opts.metadata, "metadata", "", "元数据 JSON 输出路径，为空则不写")
	flag.StringVar(&opts.texture, "texture", string(generator.TextureSeeded), "背景纹理模式：seeded 或 random")
	flag.Parse()

	if err := logger.Init("info", "text"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	if err := run(opts); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(opts options) error {
	tokenID, err := generator.ParseTokenID(opts.tokenID)
	if err != nil {
		return fmt.Errorf("-id: %w", err)
	}

	gen, err := generator.New(generator.WithTextureMode(generator.TextureMode(opts.texture)))
	if err != nil {
		return err
	}

	nft, err := gen.Generate(tokenID)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = fmt.Sprintf("token-%d.png", tokenID)
	}
	if err := os.WriteFile(out, nft.PNG, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	logger.WithFields(logger.Fields{
		"token_id":   tokenID,
		"expression": nft.Traits.Expression.String(),
		"bytes":      len(nft.PNG),
	}).Infof("image written to %s", out)

	if opts.metadata != "" {
		data, err := json.MarshalIndent(nft.Metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		if err := os.WriteFile(opts.metadata, data, 0o644); err != nil {
			return fmt.Errorf("write metadata: %w", err)
		}
		logger.Infof("metadata written to %s", opts.metadata)
	}
	return nil
}
