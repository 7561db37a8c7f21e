// Command sembind invokes profile-described operations from the command
// line and inspects annotated API descriptions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	sm "github.com/semprofile/mapper"
	"github.com/semprofile/mapper/credentials"
	"github.com/semprofile/mapper/document"
	"github.com/semprofile/mapper/engine"
	"github.com/semprofile/mapper/registry"
	"github.com/semprofile/mapper/resolve"
	"github.com/semprofile/mapper/transport"
	"github.com/semprofile/mapper/walker"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Call    CallCmd    `cmd:"" help:"Invoke a semantic operation against a described API."`
	Scan    ScanCmd    `cmd:"" help:"List the semantic mappings an API description declares."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("sembind " + sm.Version)
	return nil
}

type CallCmd struct {
	Description string            `arg:"" help:"URL or file path of the API description."`
	Operation   string            `arg:"" help:"Qualified operation id, {profile}#{affordance}."`
	Input       map[string]string `help:"Operation inputs as name=value pairs." short:"i"`
	Request     []string          `help:"Response property names to map back out." short:"r"`
	Credentials string            `help:"Path to a JSON credential store." short:"c"`
	Timeout     time.Duration     `help:"HTTP timeout." default:"30s"`
	CacheDir    string            `help:"Directory for cached descriptions." name:"cache-dir"`
	LogLevel    string            `help:"Log verbosity (debug, info, warn, error, none)." default:"warn" name:"log-level"`
}

func (c *CallCmd) Run() error {
	creds := credentials.New()
	if c.Credentials != "" {
		loaded, err := credentials.LoadFile(c.Credentials)
		if err != nil {
			return err
		}
		creds = loaded
	}

	source, url, err := descriptionSource(c.Description, c.CacheDir)
	if err != nil {
		return err
	}

	inputs := make(map[string]any, len(c.Input))
	for name, v := range c.Input {
		inputs[name] = v
	}

	inv := engine.New(source, transport.NewHTTP(), creds,
		sm.WithHTTPTimeout(c.Timeout),
		sm.WithLogLevel(c.LogLevel),
	)

	out, err := inv.Invoke(context.Background(), engine.Invocation{
		Description: url,
		Operation:   c.Operation,
		Inputs:      inputs,
		Requested:   c.Request,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type ScanCmd struct {
	Description string `arg:"" help:"URL or file path of the API description."`
	CacheDir    string `help:"Directory for cached descriptions." name:"cache-dir"`
}

func (c *ScanCmd) Run() error {
	source, url, err := descriptionSource(c.Description, c.CacheDir)
	if err != nil {
		return err
	}

	doc, err := source.Description(context.Background(), url)
	if err != nil {
		return err
	}

	for _, pe := range doc.Paths {
		for _, oe := range pe.Item.Operations {
			op := oe.Op
			if op.Affordance == "" {
				continue
			}
			fmt.Printf("%s\t%s %s\n", op.Affordance, oe.Method, pe.Path)

			for _, p := range op.Parameters {
				if id := p.ProfileID(); id != "" {
					fmt.Printf("  in  %s\t%s (%s)\n", id, p.Name, p.In)
				}
			}
			if resp, ok := op.SuccessResponse(); ok {
				if mt, ok := resp.Content.First(resolve.MediaJSON, resolve.MediaForm); ok && mt.Schema != nil {
					for _, m := range walker.Scan(mt.Schema) {
						fmt.Printf("  out %s\t%s\n", m.SemanticID, m.Cursor)
					}
				}
			}
		}
	}
	return nil
}

// descriptionSource builds a Source for either a remote URL or a local
// description file. Local files are registered under their path.
func descriptionSource(ref, cacheDir string) (registry.Source, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		opts := []registry.ClientOption{}
		if cacheDir != "" {
			opts = append(opts, registry.WithCacheDir(cacheDir))
		}
		return registry.NewClient(opts...), ref, nil
	}

	doc, err := document.LoadFile(ref)
	if err != nil {
		return nil, "", err
	}
	mem := registry.NewMemory()
	mem.Register(ref, doc)
	return mem, ref, nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("sembind"),
		kong.Description("Semantic profile to HTTP API mapper."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
