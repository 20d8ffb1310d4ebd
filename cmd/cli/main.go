package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"article-crew/internal/di"
	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/env"
	"article-crew/internal/infrastructure/userinteraction"
)

const (
	exitFailed       = 1
	exitMissingInput = 2
)

func main() {
	envService := env.NewEnvService()

	fmt.Println("\nIngrese el tema del artículo:")
	topic, err := readTopic(os.Stdin)
	if err != nil {
		log.Fatal("Error al leer la entrada: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := di.ConfigFromEnv(envService)
	cfg.LogFormat = envService.GetWithDefault("LOG_FORMAT", "console")
	cfg.LogLevel = envService.GetWithDefault("LOG_LEVEL", "warn")
	cfg.Progress = userinteraction.NewConsoleProgress()

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Error de inicialización: %v", err)
	}
	defer container.Close()

	outcome := container.Generator.Generate(ctx, entity.ArticleRequest{
		APIKey: envService.Get("OPENAI_API_KEY"),
		Topic:  topic,
	})

	switch outcome.Kind {
	case entity.OutcomeMissingInput:
		if outcome.Missing == entity.FieldAPIKey {
			fmt.Println("Por favor, defina OPENAI_API_KEY con su clave de API de OpenAI.")
		} else {
			fmt.Println("Por favor, ingrese un tema para el artículo.")
		}
		container.Close()
		os.Exit(exitMissingInput)

	case entity.OutcomeFailed:
		fmt.Printf("\nOcurrió un error: %s\n", outcome.Detail)
		container.Close()
		os.Exit(exitFailed)
	}

	path := outputPath(envService.GetWithDefault("OUTPUT_DIR", "."), outcome.Article)
	data := outcome.Article.Bytes()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("\nOcurrió un error: %v\n", err)
		container.Close()
		os.Exit(exitFailed)
	}

	fmt.Println("\nArtículo Generado:")
	fmt.Println(outcome.Article.Text)
	fmt.Println()
	fmt.Println(userinteraction.Summary(path, len(data)))
}

func readTopic(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// outputPath keeps the file inside dir even when the topic contains separators.
func outputPath(dir string, article entity.Article) string {
	name := article.FileName()
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	return filepath.Join(dir, name)
}
