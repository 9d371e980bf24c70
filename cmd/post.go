package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/posts"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage news and mall posts",
	Long: `Manage the static blog posts of the site. Posts belong to the "news" or
"mall" category and are published as <category>/<slug>.html.`,
}

var postAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a post",
	Example: `  roundboard post add --category news --title "Result time changed" --content-file notice.html
  roundboard post add --category mall --title "New store" --content "<p>Opening Monday</p>"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		content, err := postContent(cmd)
		if err != nil {
			return err
		}

		draft := posts.Draft{Content: content}
		draft.Title, _ = cmd.Flags().GetString("title")
		draft.Slug, _ = cmd.Flags().GetString("slug")
		draft.Excerpt, _ = cmd.Flags().GetString("excerpt")
		draft.Image, _ = cmd.Flags().GetString("image")
		draft.Author, _ = cmd.Flags().GetString("author")
		draft.MetaDescription, _ = cmd.Flags().GetString("meta")
		draft.Keywords, _ = cmd.Flags().GetString("keywords")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		post, err := app.Posts.Add(category, draft)
		if err != nil {
			return err
		}

		fmt.Printf("Added post %s\n", post.ID)
		fmt.Printf("Permalink: %s\n", post.Permalink)

		return nil
	},
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		list, err := app.Posts.List(category, limit)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(list)
		}

		if len(list) == 0 {
			fmt.Println("No posts yet.")
			fmt.Println("Create one with: roundboard post add --category news --title ...")

			return nil
		}

		fmt.Printf("%-36s  %-5s  %-17s  %s\n", "ID", "CAT", "DATE", "TITLE")

		for _, p := range list {
			title := truncateString(p.Title, 40)
			if !p.Published {
				title += " (unpublished)"
			}

			fmt.Printf("%-36s  %-5s  %-17s  %s\n", p.ID, p.Category, p.DateFormatted, title)
		}

		return nil
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post",
	Long:  `Show a post by ID, or by --category and --slug.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		slug, _ := cmd.Flags().GetString("slug")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		var post model.Post

		switch {
		case len(args) == 1:
			post, err = app.Posts.ByID(args[0])
		case category != "" && slug != "":
			post, err = app.Posts.BySlug(category, slug)
		default:
			return errors.New("pass a post ID or --category with --slug")
		}

		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(post)
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch posts.Patch

		flags := cmd.Flags()
		str := func(name string) *string {
			if !flags.Changed(name) {
				return nil
			}

			v, _ := flags.GetString(name)

			return &v
		}

		patch.Title = str("title")
		patch.Excerpt = str("excerpt")
		patch.Image = str("image")
		patch.Author = str("author")
		patch.MetaDescription = str("meta")
		patch.Keywords = str("keywords")

		if flags.Changed("content") || flags.Changed("content-file") {
			content, err := postContent(cmd)
			if err != nil {
				return err
			}

			patch.Content = &content
		}

		if flags.Changed("published") {
			v, _ := flags.GetBool("published")
			patch.Published = &v
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		post, err := app.Posts.Update(args[0], patch)
		if err != nil {
			return err
		}

		fmt.Printf("Updated post %s (%s)\n", post.ID, post.Permalink)

		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		post, err := app.Posts.ByID(args[0])
		if err != nil {
			return err
		}

		if !yes && !promptConfirm(fmt.Sprintf("Delete %q? [y/N]: ", post.Title)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := app.Posts.Delete(post.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted post %s\n", post.ID)
		fmt.Printf("Remember to remove %s from the web server.\n", post.Permalink)

		return nil
	},
}

var postExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write post pages into the site directory",
	Long:  `Write one post, or every published post with the category pages, into the site directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		exporter := posts.NewExporter(app.Posts, app.Renderer)
		dir := app.SiteDir()

		if len(args) == 1 {
			post, err := app.Posts.ByID(args[0])
			if err != nil {
				return err
			}

			path, err := exporter.Export(dir, post)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)

			return nil
		}

		files, err := exporter.ExportAll(dir)
		if err != nil {
			return err
		}

		fmt.Printf("UPLOAD THESE FILES FROM %s:\n\n", dir)

		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}

		fmt.Println("\nCreate folders news/ and mall/ on the server and upload each file to its folder.")

		return nil
	},
}

// postContent reads --content or --content-file.
func postContent(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("content-file")
	if file == "" {
		content, _ := cmd.Flags().GetString("content")
		return content, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}

	return string(data), nil
}

func addPostFields(c *cobra.Command) {
	c.Flags().String("title", "", "Post title")
	c.Flags().String("content", "", "Post body (HTML)")
	c.Flags().String("content-file", "", "Read the post body from a file")
	c.Flags().String("excerpt", "", "Short summary (default first 200 characters)")
	c.Flags().String("image", "", "Image URL")
	c.Flags().String("author", "", "Author (default "+posts.DefaultAuthor+")")
	c.Flags().String("meta", "", "Meta description (default the excerpt)")
	c.Flags().String("keywords", "", "Meta keywords")
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postAddCmd, postListCmd, postShowCmd, postUpdateCmd, postDeleteCmd, postExportCmd)

	addPostFields(postAddCmd)
	postAddCmd.Flags().StringP("category", "c", "", "Category: news or mall")
	postAddCmd.Flags().String("slug", "", "URL slug (default derived from the title)")
	_ = postAddCmd.MarkFlagRequired("category")
	_ = postAddCmd.MarkFlagRequired("title")

	postListCmd.Flags().StringP("category", "c", "", "Only this category")
	postListCmd.Flags().IntP("limit", "n", 0, "Maximum number of posts")
	postListCmd.Flags().Bool("json", false, "Output as JSON")

	postShowCmd.Flags().StringP("category", "c", "", "Category of --slug")
	postShowCmd.Flags().String("slug", "", "Post slug")

	addPostFields(postUpdateCmd)
	postUpdateCmd.Flags().Bool("published", true, "Publish or unpublish the post")

	postDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
