package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter"
	"github.com/niksmo/qkart/pkg/sigctx"
	"github.com/spf13/pflag"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	cleanupPolicy = "delete"
	retention     = 7 * 24 * time.Hour
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags.StringP("config", "c", "qkart.yaml", "qkart config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(config.FilePath(flags))
	if err != nil {
		printFail(err)
		closeApp()
		os.Exit(2)
	}

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		closeApp()
		os.Exit(2)
	}
	defer cl.Close()

	printStart(cfg)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, cfg, cfg.Events.Topic); err != nil {
		printFail(err)
	}
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	opts := []kgo.Opt{kgo.SeedBrokers(cfg.Events.SeedBrokers...)}
	if tlsFiles := cfg.Events.TLS; tlsFiles.Enabled() {
		tlsCfg, err := adapter.MakeTLSConfig(tlsFiles.CA, tlsFiles.Cert, tlsFiles.Key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}
	return kadm.NewOptClient(opts...)
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, cfg config.Config, topics ...string,
) error {
	var (
		policy   = cleanupPolicy
		minISR   = "1"
		retainMs = fmt.Sprint(retention.Milliseconds())
	)

	topicConfig := map[string]*string{
		"cleanup.policy":      &policy,
		"min.insync.replicas": &minISR,
		"retention.ms":        &retainMs,
	}

	responses, err := cl.CreateTopics(
		ctx,
		cfg.Events.Partitions,
		cfg.Events.ReplicationFactor,
		topicConfig,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if err := res.Err; err != nil {
			if errors.Is(err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(cfg config.Config) {
	fmt.Printf(`initializing topics...
	- %q (partitions=%d, replication=%d)

`,
		cfg.Events.Topic,
		cfg.Events.Partitions,
		cfg.Events.ReplicationFactor,
	)
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
