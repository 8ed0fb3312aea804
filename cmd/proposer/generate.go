package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

func (c *cli) generateCmd() *cobra.Command {
	var (
		pc         models.ProposalContext
		mediaFiles []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Gera uma proposta híbrida e o relatório de estratégia",
		Long: `Escolhe 2 ou 3 templates da biblioteca, pede à IA um template híbrido,
salva o resultado no diretório ai e imprime a proposta com o relatório.

Exemplo:
  proposer generate --nome Ana --empresa "Agência Y" --nicho "Serviços Premium" \
    --onde anúncio --problem "site amador" --media print.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateProposalContext(pc); err != nil {
				return err
			}

			media, err := readMedia(mediaFiles)
			if err != nil {
				return err
			}

			out, err := c.app.Proposals.Generate(cmd.Context(), pc, media)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&pc.ClientName, "nome", "", "nome do cliente")
	flags.StringVar(&pc.Company, "empresa", "", "empresa do cliente")
	flags.StringVar(&pc.Niche, "nicho", "", "nicho de mercado")
	flags.StringVar(&pc.FoundAt, "onde", "", "onde o cliente foi encontrado")
	flags.StringVar(&pc.Compliment, "ponto", "", "elogio ou ponto positivo")
	flags.StringArrayVar(&pc.Problems, "problem", nil, "problema observado (pode repetir)")
	flags.StringArrayVar(&mediaFiles, "media", nil, "arquivo de imagem ou vídeo (pode repetir)")
	return cmd
}

func readMedia(paths []string) ([]models.MediaAttachment, error) {
	if len(paths) > validation.MaxMediaCount {
		return nil, fmt.Errorf("no máximo %d arquivos de mídia são permitidos", validation.MaxMediaCount)
	}

	media := make([]models.MediaAttachment, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("não foi possível ler %s: %w", path, err)
		}
		media = append(media, models.MediaAttachment{Content: base64.StdEncoding.EncodeToString(data)})
	}
	return media, nil
}
