package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/pipeline"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/chartpkg/charts"
	"github.com/WangWilly/xConvo/pkgs/chartpkg/figurewriter"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/clients/xclient"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/config"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/database"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/logging"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/metrics"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/storage"
	"github.com/gookit/color"
	log "github.com/sirupsen/logrus"
)

func main() {
	println("xConvo - X Conversation Analyzer")

	////////////////////////////////////////////////////////////////////////////
	// Command Line Arguments Setup
	////////////////////////////////////////////////////////////////////////////
	var ticker string
	var build bool
	var loadRaw bool
	var confArg bool
	var isDebug bool
	var topN int
	var maxPosts int

	flag.StringVar(&ticker, "ticker", "", "ticker to analyze, e.g. TSLA")
	flag.BoolVar(&build, "build", false, "fetch posts and rebuild the dataset instead of loading the saved one")
	flag.BoolVar(&loadRaw, "load-raw", false, "rebuild the dataset from the saved raw records without fetching")
	flag.BoolVar(&confArg, "conf", false, "reconfigure")
	flag.BoolVar(&isDebug, "debug", false, "display debug message")
	flag.IntVar(&topN, "top", 0, "number of ranked posts to keep")
	flag.IntVar(&maxPosts, "max", 0, "maximum number of posts to fetch")
	flag.Parse()

	// context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var homepath string
	if runtime.GOOS == "windows" {
		homepath = os.Getenv("appdata")
	} else {
		homepath = os.Getenv("HOME")
	}
	if homepath == "" {
		panic("failed to get home path from env")
	}

	appRootPath := filepath.Join(homepath, ".x_convo")
	confPath := filepath.Join(appRootPath, "conf.yaml")
	cliLogPath := filepath.Join(appRootPath, "client.log")
	logPath := filepath.Join(appRootPath, "xconvo.log")
	if err := os.MkdirAll(appRootPath, 0755); err != nil {
		log.Fatalln("failed to make app dir", err)
	}

	////////////////////////////////////////////////////////////////////////////
	// Logger Initialization
	////////////////////////////////////////////////////////////////////////////
	logFile, err := os.OpenFile(logPath, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalln("failed to create log file:", err)
	}
	defer logFile.Close()
	logging.InitLogger(isDebug, logFile)

	if err := config.LoadEnvFiles(".env", filepath.Join(appRootPath, ".env")); err != nil {
		log.Fatalln(err)
	}

	// Configuration Loading
	conf, err := config.ReadConfig(confPath)
	if os.IsNotExist(err) || confArg {
		conf, err = config.PromptConfig(confPath, os.Stdin, os.Stdout)
		if err != nil {
			log.Fatalln("config failure with", err)
		}
	}
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}
	if confArg {
		log.Println("config done")
		return
	}
	log.Infoln("config is loaded")

	if ticker == "" {
		log.Fatalln("missing -ticker")
	}
	if topN > 0 {
		conf.TopN = topN
	}
	if maxPosts > 0 {
		conf.MaxPosts = maxPosts
	}

	// Storage Path Setup
	pathHelper, err := storage.NewStorePath(conf.RootPath)
	if err != nil {
		log.Fatalln("failed to make store dir:", err)
	}
	dsPath, err := pathHelper.Dataset(ticker)
	if err != nil {
		log.Fatalln("failed to make dataset dir:", err)
	}
	if conf.Metrics.Enabled {
		// also flushed by log.Fatal, which skips deferred calls
		defer metrics.FlushOnExit(pathHelper.Metrics)()
	}

	// listen signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer close(sigChan)
	defer signal.Stop(sigChan)
	go func() {
		sig, ok := <-sigChan
		if ok {
			log.Warnln("[listener] caught signal:", sig)
			cancel()
		}
	}()

	////////////////////////////////////////////////////////////////////////////
	// Pipeline Setup
	////////////////////////////////////////////////////////////////////////////
	annotator, err := sentiment.New(conf.Sentiment.Provider, conf.Sentiment.Model, conf.Sentiment.ApiKey)
	if err != nil {
		log.Fatalln("failed to create sentiment annotator:", err)
	}

	var fetcher pipeline.Fetcher
	if build {
		if err := conf.Validate(); err != nil {
			log.Fatalln(err)
		}
		client := xclient.New(xclient.DefaultConfig(conf.Credentials.BearerToken))
		cliLogFile, err := os.OpenFile(cliLogPath, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			log.Fatalln("failed to create log file:", err)
		}
		defer cliLogFile.Close()
		logging.SetXClientLogger(client, cliLogFile)
		client.OnRetry(metrics.IncAPIRetry)
		fetcher = client
	}

	p := pipeline.New(fetcher, annotator, pipeline.Config{
		MaxPosts:           conf.MaxPosts,
		TopN:               conf.TopN,
		TopWords:           conf.TopWords,
		FetchThreadReplies: conf.FetchThreadReplies,
	})

	////////////////////////////////////////////////////////////////////////////
	// Main Job Execution
	////////////////////////////////////////////////////////////////////////////
	var ds *pipeline.Dataset
	switch {
	case build:
		log.Infoln("fetching posts for", color.FgLightBlue.Render(dsPath.Ticker))
		ds, err = p.Build(ctx, dsPath.Ticker)
	case loadRaw:
		var raw *pipeline.Dataset
		if raw, err = pipeline.LoadRaw(dsPath); err == nil {
			ds, err = p.BuildFromRaw(ctx, dsPath.Ticker, raw.RawPosts, raw.RawReplies)
		}
	default:
		ds, err = pipeline.LoadDataset(dsPath)
	}
	if err != nil {
		fatalStage(err)
	}
	if build || loadRaw {
		if err := pipeline.SaveDataset(dsPath, ds); err != nil {
			fatalStage(err)
		}
	}
	printTopPosts(ds, 5)

	res, err := p.Analyze(ctx, dsPath.Ticker, ds)
	if err != nil {
		fatalStage(err)
	}
	if err := pipeline.SaveAnalysis(dsPath, res); err != nil {
		fatalStage(err)
	}

	files, err := figurewriter.WriteAll(dsPath.Html, map[string]*grob.Fig{
		"pie_chart":             charts.WordFrequencyPie(res.PostWords[1], res.ReplyWords[1], charts.DEFAULT_PIE_TERMS),
		"sentiment_gauge":       charts.SentimentGauge(res.PostSentiment.Polarity),
		"boxplots":              charts.EngagementBoxplot(ds.Posts),
		"polarity_histogram":    charts.PolarityHistogram(ds.Posts),
		"description_influence": charts.DescriptionInfluenceBar(res.DescriptionWords),
	})
	if err != nil {
		log.Fatalln("failed to write charts:", err)
	}
	for _, f := range files {
		log.Infoln("chart written:", f)
	}

	// Database Recording
	if conf.Database.Enabled() {
		db, err := database.ConnectWithConfig(conf.Database)
		if err != nil {
			log.Fatalln("failed to connect to database:", err)
		}
		defer db.Close()
		log.Infoln("database is connected")

		run, err := pipeline.NewRecorder(db).Record(ctx, ds, res)
		if err != nil {
			fatalStage(err)
		}
		log.Infoln("run recorded:", color.FgLightGreen.Render(run.Id))
	}

	log.Infof("post polarity %s, reply polarity %s",
		colorPolarity(res.PostSentiment.Polarity), colorPolarity(res.ReplySentiment.Polarity))
}

////////////////////////////////////////////////////////////////////////////////

func fatalStage(err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		log.Fatalln("failed at stage", color.FgRed.Render(stageErr.Stage)+":", stageErr.Err)
	}
	log.Fatalln(err)
}

func printTopPosts(ds *pipeline.Dataset, n int) {
	for i, post := range ds.Posts {
		if i >= n {
			break
		}
		log.Infof("#%d %s %s", i+1, color.FgLightBlue.Render("@"+post.Username), post.CleanText)
	}
}

func colorPolarity(polarity float64) string {
	text := fmt.Sprintf("%.3f", polarity)
	switch {
	case polarity > 0:
		return color.FgGreen.Render(text)
	case polarity < 0:
		return color.FgRed.Render(text)
	}
	return text
}
