package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/prompter"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	qnaSearch string
	qnaAnswer string
	qnaPages  pageFlags
)

var qnaCmd = &cobra.Command{
	Use:   "qna",
	Short: "Q&A moderation commands",
	Long:  "List, answer and remove community questions",
}

var qnaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := qnaPages.params()
		p.Search = qnaSearch
		return service.NewQnAService(api.Default()).ListQuestions(cmd.Context(), p)
	},
}

var qnaViewCmd = &cobra.Command{
	Use:   "view <question-id>",
	Short: "View a question and its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewQnAService(api.Default()).ViewQuestion(cmd.Context(), args[0])
	},
}

var qnaAnswerCmd = &cobra.Command{
	Use:   "answer <question-id>",
	Short: "Answer a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := qnaAnswer
		if content == "" {
			var err error
			if content, err = prompter.PromptMultilineString("Answer", 100); err != nil {
				return err
			}
		}
		return service.NewQnAService(api.Default()).Answer(cmd.Context(), args[0], content)
	},
}

var qnaDeleteCmd = &cobra.Command{
	Use:   "delete <question-id> [answer-id]",
	Short: "Delete a question, or one of its answers",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewQnAService(api.Default())
		if len(args) == 2 {
			if ok, err := confirmDelete("answer", args[1]); !ok || err != nil {
				return err
			}
			return svc.DeleteAnswer(cmd.Context(), args[0], args[1])
		}
		if ok, err := confirmDelete("question", args[0]); !ok || err != nil {
			return err
		}
		return svc.DeleteQuestion(cmd.Context(), args[0])
	},
}

func init() {
	qnaPages.register(qnaListCmd, 10)
	qnaListCmd.Flags().StringVar(&qnaSearch, "search", "", "Search text")
	qnaAnswerCmd.Flags().StringVarP(&qnaAnswer, "content", "c", "", "Answer text")

	qnaCmd.AddCommand(qnaListCmd)
	qnaCmd.AddCommand(qnaViewCmd)
	qnaCmd.AddCommand(qnaAnswerCmd)
	qnaCmd.AddCommand(qnaDeleteCmd)
}
