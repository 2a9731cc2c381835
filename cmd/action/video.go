package action

import (
	"github.com/lightningstudio/watchbili/internal/bootstrap"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	"github.com/spf13/cobra"
)

var (
	unlike     bool
	multiply   int
	selectLike bool
	addMedia   []int64
	delMedia   []int64
)

var LikeCmd = &cobra.Command{
	Use:   "like <av|BV|url>",
	Short: "like a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bilibili.ParseVideoID(args[0])
		if err != nil {
			return err
		}
		return report(bootstrap.BilibiliClient().Action.Like(cmd.Context(), id, !unlike, options()...))
	},
}

var CoinCmd = &cobra.Command{
	Use:   "coin <av|BV|url>",
	Short: "give coins to a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bilibili.ParseVideoID(args[0])
		if err != nil {
			return err
		}
		return report(bootstrap.BilibiliClient().Action.Coin(cmd.Context(), id, multiply, selectLike, options()...))
	},
}

var TripleCmd = &cobra.Command{
	Use:   "triple <av|BV|url>",
	Short: "like, coin and favorite at once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bilibili.ParseVideoID(args[0])
		if err != nil {
			return err
		}
		return report(bootstrap.BilibiliClient().Action.Triple(cmd.Context(), id, options()...))
	},
}

var FavoriteCmd = &cobra.Command{
	Use:   "favorite <av|url>",
	Short: "add to or remove from favorite folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := bilibili.ParseVideoID(args[0])
		if err != nil {
			return err
		}
		return report(bootstrap.BilibiliClient().Action.Favorite(cmd.Context(), id, addMedia, delMedia, options()...))
	},
}

func init() {
	ActionCmd.AddCommand(LikeCmd, CoinCmd, TripleCmd, FavoriteCmd)
	LikeCmd.Flags().BoolVar(&unlike, "undo", false, "remove the like")
	CoinCmd.Flags().IntVar(&multiply, "multiply", 1, "coins to give, 1 or 2")
	CoinCmd.Flags().BoolVar(&selectLike, "like", false, "like as well")
	FavoriteCmd.Flags().Int64SliceVar(&addMedia, "add", nil, "folder ids to add to")
	FavoriteCmd.Flags().Int64SliceVar(&delMedia, "del", nil, "folder ids to remove from")
}
